package email

// Message - письмо кандидату
type Message struct {
	To      string
	Subject string
	Body    string // plain text
}

// TemplateData - данные для подстановки в шаблоны писем
type TemplateData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	Status        string
}
