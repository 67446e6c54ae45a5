package registry

// Default returns the built-in catalog of MCP servers.
func Default() *Registry {
	return New(
		Entry{
			Name:        "Filesystem MCP",
			Package:     "@modelcontextprotocol/server-filesystem",
			Version:     "2025.7.29",
			Description: "File system operations and management",
		},
		Entry{
			Name:        "Memory MCP",
			Package:     "@modelcontextprotocol/server-memory",
			Version:     "2025.8.4",
			Description: "Persistent memory and context management",
		},
		Entry{
			Name:        "Git MCP",
			Package:     "@cyanheads/git-mcp-server",
			Version:     "2.3.2",
			Description: "Git repository management and operations",
		},
		Entry{
			Name:            "GitHub MCP",
			Package:         "@edjl/github-mcp",
			Version:         "1.0.7",
			Description:     "GitHub API integration and repository management",
			RequiredEnvVars: []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
		},
		Entry{
			Name:        "Playwright MCP",
			Package:     "@playwright/mcp",
			Version:     "0.0.33",
			Description: "Web automation and testing capabilities",
		},
		Entry{
			Name:            "Context7 MCP",
			Package:         "@upstash/context7-mcp",
			Version:         "v1.0.14",
			Description:     "Context management and data persistence",
			RequiredEnvVars: []string{"CONTEXT7_API_KEY", "CONTEXT7_PROJECT_ID"},
		},
		Entry{
			Name:            "Firecrawl MCP",
			Package:         "firecrawl-mcp",
			Version:         "1.12.0",
			Description:     "Web scraping and content extraction",
			RequiredEnvVars: []string{"FIRECRAWL_API_KEY"},
		},
		Entry{
			Name:            "Figma MCP",
			Package:         "figma-developer-mcp",
			Version:         "0.5.0",
			Description:     "Figma design file access and management",
			RequiredEnvVars: []string{"FIGMA_ACCESS_TOKEN"},
			Optional:        true,
		},
	)
}
