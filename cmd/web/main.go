// @title           HireMind API
// @version         1.0
// @description     AI-ассистент рекрутера: вакансии, кандидаты, анализ резюме и подписки.
// @contact.name    HireMind
// @contact.url     https://hiremind.rkolabs.dev
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"

	_ "hiremind_backend/docs"
	"hiremind_backend/internal/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hiremind:", err)
		os.Exit(1)
	}
}
