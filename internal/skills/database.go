// Package skills provides the technical-skill database used for keyword
// extraction from job descriptions and for ordering the skills section of a
// generated resume.
package skills

// Database holds the canonical list of known technical skill terms. Matching
// is case-insensitive but results always carry the canonical casing.
type Database struct {
	terms []string
}

// NewDatabase returns a Database preloaded with the built-in term list.
func NewDatabase() *Database {
	return &Database{terms: defaultTerms}
}

// Terms returns the canonical term list in declaration order.
func (d *Database) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}

// CommonSkills returns skills that appear across most job postings. They are
// used to pad a thin extraction result up to a useful size.
func CommonSkills() []string {
	return []string{
		"Git", "Agile", "Scrum", "REST", "API", "JSON", "SQL", "HTML5", "CSS3",
		"JavaScript", "TypeScript", "Problem Solving", "Code Review", "CI/CD",
		"Docker", "Testing", "Debugging", "Communication", "Team Collaboration",
		"Documentation", "Performance Optimization", "Security", "Authentication",
	}
}

var defaultTerms = []string{
	// Programming languages
	"Python", "Java", "JavaScript", "TypeScript", "C#", "C++", "C", "Go", "Rust", "Ruby",
	"PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB", "Perl", "Shell", "Bash", "PowerShell",

	// Frontend
	"React", "Angular", "Vue.js", "Vue", "Next.js", "Nuxt.js", "Svelte", "Ember.js",
	"HTML5", "HTML", "CSS3", "CSS", "SCSS", "SASS", "LESS", "Tailwind CSS", "Bootstrap",
	"Material UI", "Material Design", "Chakra UI", "Ant Design", "Semantic UI",
	"jQuery", "Redux", "MobX", "NgRx", "RxJS", "Webpack", "Vite", "Rollup", "Parcel",
	"Babel", "ESLint", "Prettier", "Styled Components", "Emotion", "CSS Modules",
	"Responsive Design", "Mobile-First Design", "Progressive Web Apps", "PWA",
	"Single Page Applications", "SPA", "Server-Side Rendering", "SSR", "Static Site Generation",
	"Web Components", "Shadow DOM", "Web Accessibility", "WCAG", "ARIA", "SEO",
	"Cross-Browser Compatibility", "Browser DevTools", "Lighthouse",

	// Backend
	".NET", ".NET Core", ".NET Framework", "ASP.NET", "ASP.NET Core", "ASP.NET MVC",
	"ASP.NET Web API", "Entity Framework", "Entity Framework Core", "ADO.NET", "LINQ",
	"Node.js", "Express.js", "Nest.js", "Koa", "Fastify", "Hapi",
	"Django", "Flask", "FastAPI", "Pyramid", "Tornado",
	"Spring", "Spring Boot", "Spring MVC", "Hibernate", "JPA",
	"Ruby on Rails", "Sinatra", "Laravel", "Symfony", "CodeIgniter",
	"GraphQL", "Apollo", "gRPC", "REST", "RESTful API", "SOAP", "WebSockets",
	"SignalR", "Socket.io", "Microservices", "Monolithic Architecture",
	"Serverless", "Lambda Functions", "Event-Driven Architecture",
	"Message Queues", "RabbitMQ", "Kafka", "Redis", "Celery",
	"API Gateway", "API Design", "OpenAPI", "Swagger", "Postman",

	// Databases
	"SQL", "SQL Server", "MySQL", "PostgreSQL", "Oracle", "SQLite", "MariaDB",
	"MongoDB", "Cassandra", "Elasticsearch", "DynamoDB", "CosmosDB",
	"Firebase", "Firestore", "Realm", "Neo4j", "CouchDB", "InfluxDB",
	"Database Design", "Database Optimization", "Query Optimization", "Indexing",
	"Stored Procedures", "Triggers", "Views", "Transactions", "ACID", "CAP Theorem",
	"NoSQL", "Document Databases", "Key-Value Stores", "Column Stores", "Graph Databases",
	"Data Modeling", "Schema Design", "Normalization", "Denormalization",
	"Database Migration", "Data Warehousing", "ETL", "Data Pipeline",

	// Cloud platforms
	"AWS", "Amazon Web Services", "Azure", "Microsoft Azure", "Google Cloud Platform", "GCP",
	"EC2", "S3", "Lambda", "RDS", "CloudFront", "Route 53", "ECS", "EKS",
	"Azure Functions", "Azure App Services", "Azure DevOps", "Azure SQL Database",
	"Azure Blob Storage", "Azure Kubernetes Service", "AKS", "Application Insights",
	"Cloud Functions", "Cloud Run", "BigQuery", "Cloud Storage", "Cloud SQL",
	"Heroku", "DigitalOcean", "Linode", "Vercel", "Netlify", "Railway",
	"Cloud Architecture", "Cloud Security", "Cloud Migration", "Multi-Cloud",
	"Infrastructure as Code", "IaC", "Terraform", "CloudFormation", "ARM Templates",
	"Serverless Framework", "SAM", "CDK", "Pulumi",

	// DevOps and CI/CD
	"Docker", "Kubernetes", "Helm", "Docker Compose", "Container Orchestration",
	"Jenkins", "GitHub Actions", "GitLab CI", "CircleCI", "Travis CI", "Bitbucket Pipelines",
	"Azure Pipelines", "TeamCity", "Bamboo", "Octopus Deploy",
	"Git", "GitHub", "GitLab", "Bitbucket", "Version Control", "Source Control",
	"CI/CD", "Continuous Integration", "Continuous Deployment", "Continuous Delivery",
	"Automation", "Build Automation", "Deployment Automation", "Release Management",
	"Infrastructure Monitoring", "Application Monitoring", "Log Management",
	"Prometheus", "Grafana", "ELK Stack", "Logstash", "Kibana",
	"Splunk", "DataDog", "New Relic", "CloudWatch",
	"Sentry", "Rollbar", "PagerDuty", "Nagios", "Zabbix",

	// Testing
	"Unit Testing", "Integration Testing", "End-to-End Testing", "E2E Testing",
	"Test-Driven Development", "TDD", "Behavior-Driven Development", "BDD",
	"Jest", "Mocha", "Chai", "Jasmine", "Karma", "Cypress", "Playwright", "Selenium",
	"Puppeteer", "TestCafe", "WebdriverIO", "JUnit", "TestNG", "Mockito", "JMock",
	"xUnit", "NUnit", "MSTest", "PyTest", "unittest", "RSpec", "PHPUnit",
	"Test Automation", "API Testing", "Performance Testing", "Load Testing",
	"Stress Testing", "Security Testing", "Penetration Testing", "Vulnerability Assessment",
	"JMeter", "Gatling", "Locust", "K6", "Artillery",

	// Security
	"OAuth", "OAuth2", "OpenID Connect", "SAML", "JWT", "JSON Web Tokens",
	"Authentication", "Authorization", "RBAC", "Identity Management", "SSO",
	"Encryption", "SSL/TLS", "HTTPS", "Certificate Management", "PKI",
	"Web Security", "Application Security", "Network Security",
	"OWASP", "XSS", "CSRF", "SQL Injection", "Security Best Practices",
	"Content Security Policy", "CSP", "CORS", "Same-Origin Policy",
	"Secure Coding", "Code Security", "Security Audits", "Compliance",
	"GDPR", "HIPAA", "PCI DSS", "SOC 2", "ISO 27001",

	// Architecture and design
	"Microservices Architecture", "Service-Oriented Architecture", "SOA",
	"Domain-Driven Design", "DDD", "CQRS",
	"Event Sourcing", "Hexagonal Architecture", "Clean Architecture", "Onion Architecture",
	"MVC", "MVVM", "MVP", "Design Patterns", "Gang of Four", "SOLID Principles",
	"Scalable Architecture", "Distributed Systems", "System Design", "High Availability",
	"Load Balancing", "Caching", "CDN", "Performance Optimization", "Code Optimization",
	"Refactoring", "Code Review", "Technical Debt", "Legacy System Modernization",
	"RESTful", "HATEOAS", "API Versioning",

	// Methodologies
	"Agile", "Scrum", "Kanban", "Lean", "Waterfall", "XP", "Extreme Programming",
	"SAFe", "DevOps", "GitOps", "Pair Programming", "Sprint Planning",
	"Daily Standup", "Retrospective", "Sprint Review", "Backlog Grooming",
	"User Stories", "Acceptance Criteria", "Definition of Done", "Story Points",
	"Estimation", "Velocity", "Burndown Chart", "Burnup Chart",

	// Tools and platforms
	"Jira", "Confluence", "Trello", "Asana", "Monday.com", "ClickUp", "Linear",
	"Slack", "Microsoft Teams", "Zoom", "Google Workspace", "Microsoft 365",
	"VS Code", "Visual Studio", "IntelliJ IDEA", "PyCharm", "WebStorm",
	"Eclipse", "NetBeans", "Sublime Text", "Atom", "Vim", "Emacs",
	"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator",
	"npm", "yarn", "pnpm", "Maven", "Gradle", "pip", "NuGet", "Composer",

	// Data and analytics
	"Data Analysis", "Data Science", "Machine Learning", "Deep Learning", "AI",
	"Artificial Intelligence", "Neural Networks", "TensorFlow", "PyTorch", "Keras",
	"scikit-learn", "Pandas", "NumPy", "Matplotlib", "Seaborn", "Plotly",
	"Data Visualization", "Business Intelligence", "BI", "Tableau", "Power BI",
	"Looker", "Metabase", "Google Analytics", "Adobe Analytics", "Mixpanel",
	"Segment", "Amplitude", "Heap", "Hotjar",

	// Mobile
	"React Native", "Flutter", "Ionic", "Xamarin", "Cordova", "PhoneGap",
	"iOS Development", "Android Development", "SwiftUI", "Objective-C",
	"Mobile UI/UX", "Mobile Performance", "App Store Optimization",
	"Push Notifications", "In-App Purchases", "Mobile Analytics",

	// Other technologies
	"WebRTC", "WebGL", "Three.js", "D3.js", "Chart.js", "Highcharts", "ApexCharts",
	"Storybook", "Chromatic", "Design Systems", "Component Libraries",
	"Internationalization", "i18n", "Localization", "l10n", "Translation",
	"Accessibility", "A11y", "Screen Readers", "Keyboard Navigation",
	"Performance Monitoring", "Error Tracking", "Feature Flags", "A/B Testing",
	"Analytics", "Metrics", "KPI", "Dashboards", "Reporting",
	"Documentation", "Technical Writing", "API Documentation", "Markdown",
	"Wiki", "Knowledge Base", "Runbooks",

	// Soft skills
	"Problem Solving", "Critical Thinking", "Communication", "Team Collaboration",
	"Leadership", "Mentoring", "Technical Leadership",
	"Cross-Functional Collaboration", "Stakeholder Management", "Project Management",
	"Time Management", "Prioritization", "Decision Making", "Conflict Resolution",
}
