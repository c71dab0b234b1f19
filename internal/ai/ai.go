// Package ai определяет контракт внешнего сервиса генерации текста.
package ai

import "context"

// TextGenerator - одна операция: промпт на входе, сырой текст модели на выходе
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc позволяет передать функцию как TextGenerator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
