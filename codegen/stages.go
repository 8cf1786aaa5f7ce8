package codegen

// DefaultFullStackStages breaks a full-stack application into focused
// generation stages so each response fits within the model's output limit.
func DefaultFullStackStages() []Stage {
	return []Stage{
		{
			Name: "Frontend Components",
			Focus: "Generate only the frontend components: the main views, " +
				"forms and navigation for the application's primary workflows.",
		},
		{
			Name: "Backend API",
			Focus: "Generate only the backend API: route handlers, request " +
				"validation, data models and persistence.",
		},
		{
			Name: "Configuration & Setup",
			Focus: "Generate only the configuration and setup: dependency " +
				"manifests, environment configuration and build scripts.",
		},
		{
			Name: "Tests & Documentation",
			Focus: "Generate only the tests and documentation: unit tests for " +
				"the core flows and a README covering setup and usage.",
		},
	}
}
