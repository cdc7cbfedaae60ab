package email

// PreviewData holds sample data for every template, used to render local
// previews and to check that each template executes.
var PreviewData = map[Template]any{
	TemplateWelcome: WelcomeData{
		Email:    "jane@example.com",
		Role:     "ADMIN",
		LoginURL: "http://localhost:3000/login",
	},
}
