package onboarding

// Question is a multiple-choice assessment question. Answer is the index of
// the correct option and is never serialized to clients.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"-"`
}

// QuestionBank maps an interest field to its question set. Fields without a
// bank fall back to DefaultQuestions.
var QuestionBank = map[string][]Question{
	"IT": {
		{ID: 1, Question: "What does HTML stand for?", Options: []string{"Hyper Text Markup Language", "High Tech Modern Language", "Hyper Transfer Markup Language", "Home Tool Markup Language"}, Answer: 0},
		{ID: 2, Question: "Which programming language is known as the scripting language for the web?", Options: []string{"Java", "Python", "JavaScript", "C++"}, Answer: 2},
		{ID: 3, Question: "What is the correct way to declare a variable in JavaScript?", Options: []string{"var x = 5;", "variable x = 5;", "v x = 5;", "declare x = 5;"}, Answer: 0},
		{ID: 4, Question: "What is Git?", Options: []string{"A programming language", "A version control system", "A database", "An operating system"}, Answer: 1},
		{ID: 5, Question: "Which of the following is a NoSQL database?", Options: []string{"MySQL", "PostgreSQL", "MongoDB", "Oracle"}, Answer: 2},
		{ID: 6, Question: "What is CSS used for?", Options: []string{"Designing database schemas", "Debugging code", "Styling web pages", "Server-side programming"}, Answer: 2},
		{ID: 7, Question: "What is an API?", Options: []string{"Application Programming Interface", "Automated Program Integration", "Application Process Integration", "Automated Programming Interface"}, Answer: 0},
		{ID: 8, Question: "What is the purpose of a loop in programming?", Options: []string{"To store data", "To make decisions", "To repeat code", "To define functions"}, Answer: 2},
		{ID: 9, Question: "What is cloud computing?", Options: []string{"Programming for weather apps", "Using remote servers for storage and processing", "A type of computer hardware", "A programming language"}, Answer: 1},
		{ID: 10, Question: "What is cybersecurity?", Options: []string{"Protecting computer systems from theft", "Designing user interfaces", "Writing code documentation", "Testing software"}, Answer: 0},
	},
	"Marketing": {
		{ID: 1, Question: "What is the 4Ps of marketing?", Options: []string{"Product, Price, Place, Promotion", "People, Process, Performance, Profit", "Planning, Processing, Purchasing, Promotion", "Product, People, Price, Process"}, Answer: 0},
		{ID: 2, Question: "What is SEO?", Options: []string{"Search Engine Optimization", "Social Media Engagement", "Sales Enhancement Option", "Strategic Email Operation"}, Answer: 0},
		{ID: 3, Question: "What does KPI stand for?", Options: []string{"Key Performance Indicator", "Knowledge Processing Index", "Key Process Integration", "Knowledge Performance Index"}, Answer: 0},
		{ID: 4, Question: "What is a target audience?", Options: []string{"A group of competitors", "A specific group of consumers", "A marketing team", "A sales strategy"}, Answer: 1},
		{ID: 5, Question: "What is content marketing?", Options: []string{"Creating content only for social media", "Writing product descriptions", "Creating and sharing valuable content", "Advertising products"}, Answer: 2},
		{ID: 6, Question: "What is a brand?", Options: []string{"A company logo", "A product name", "The identity and perception of a company", "A type of product"}, Answer: 2},
		{ID: 7, Question: "What is market research?", Options: []string{"Selling products", "Gathering information about customers and market", "Marketing to competitors", "Creating advertisements"}, Answer: 1},
		{ID: 8, Question: "What is a marketing funnel?", Options: []string{"A sales tool", "A visualization of customer journey", "A pricing strategy", "A product design"}, Answer: 1},
		{ID: 9, Question: "What is email marketing?", Options: []string{"Sending spam emails", "Sending targeted emails to prospects", "Writing business letters", "Creating email software"}, Answer: 1},
		{ID: 10, Question: "What is social media marketing?", Options: []string{"Using social platforms for advertising", "Creating social networks", "Testing products", "Managing customer service"}, Answer: 0},
	},
	"Design": {
		{ID: 1, Question: "What does UI stand for?", Options: []string{"User Interface", "Universal Input", "Unified Integration", "User Input"}, Answer: 0},
		{ID: 2, Question: "What does UX stand for?", Options: []string{"User Experience", "Universal Exchange", "User Extension", "Unified Experience"}, Answer: 0},
		{ID: 3, Question: "What is a color wheel?", Options: []string{"A software tool", "A circular representation of colors", "A drawing tool", "A font type"}, Answer: 1},
		{ID: 4, Question: "What is typography?", Options: []string{"Writing code", "The art of arranging text", "Creating logos", "Building websites"}, Answer: 1},
		{ID: 5, Question: "What is whitespace in design?", Options: []string{"White colored areas only", "Empty space between elements", "Background color", "A software tool"}, Answer: 1},
		{ID: 6, Question: "What is a wireframe?", Options: []string{"A coding framework", "A basic visual guide", "A font style", "A color palette"}, Answer: 1},
		{ID: 7, Question: "What is responsive design?", Options: []string{"Designing for mobile only", "Creating adaptive layouts for different devices", "A graphic design style", "A typography technique"}, Answer: 1},
		{ID: 8, Question: "What are complementary colors?", Options: []string{"Colors that are the same", "Colors opposite on the color wheel", "Primary colors", "Dark colors"}, Answer: 1},
		{ID: 9, Question: "What is hierarchy in design?", Options: []string{"A company structure", "Visual arrangement to show importance", "A font style", "A color theory"}, Answer: 1},
		{ID: 10, Question: "What is a portfolio?", Options: []string{"A collection of work samples", "A design software", "A color palette", "A font type"}, Answer: 0},
	},
	"Finance": {
		{ID: 1, Question: "What is ROI?", Options: []string{"Rate of Investment", "Return on Investment", "Revenue of Income", "Return on Income"}, Answer: 1},
		{ID: 2, Question: "What is a balance sheet?", Options: []string{"A sheet that balances", "A financial statement showing assets and liabilities", "A tax form", "A bank statement"}, Answer: 1},
		{ID: 3, Question: "What is inflation?", Options: []string{"Increase in prices over time", "Decrease in economy", "A type of tax", "A government policy"}, Answer: 0},
		{ID: 4, Question: "What is compound interest?", Options: []string{"Simple calculation", "Interest calculated on initial principal and accumulated interest", "A fixed rate", "A tax form"}, Answer: 1},
		{ID: 5, Question: "What is a budget?", Options: []string{"A yearly plan", "A plan for income and expenses", "A tax return", "A bank account"}, Answer: 1},
		{ID: 6, Question: "What is diversification?", Options: []string{"Focusing on one investment", "Spreading investments to reduce risk", "A banking service", "A tax strategy"}, Answer: 1},
		{ID: 7, Question: "What is a stock?", Options: []string{"A type of bond", "A share in company ownership", "A currency", "A real estate property"}, Answer: 1},
		{ID: 8, Question: "What is a credit score?", Options: []string{"A loan amount", "A numerical representation of creditworthiness", "A bank account number", "A salary amount"}, Answer: 1},
		{ID: 9, Question: "What is a audit?", Options: []string{"A financial investigation", "A tax form", "A loan application", "A bank service"}, Answer: 0},
		{ID: 10, Question: "What is profit?", Options: []string{"Total revenue", "Money gained after expenses", "A business type", "A tax"}, Answer: 1},
	},
	"Sales": {
		{ID: 1, Question: "What is a sales funnel?", Options: []string{"A product delivery system", "A visual representation of the sales process", "A pricing strategy", "A marketing campaign"}, Answer: 1},
		{ID: 2, Question: "What is a lead?", Options: []string{"A potential customer", "A sales manager", "A product type", "A store location"}, Answer: 0},
		{ID: 3, Question: "What is closing in sales?", Options: []string{"Ending a conversation", "Completing a sale", "Closing a store", "Taking inventory"}, Answer: 1},
		{ID: 4, Question: "What is a value proposition?", Options: []string{"A product price", "A statement explaining why customer should buy", "A sales pitch", "A marketing slogan"}, Answer: 1},
		{ID: 5, Question: "What is CRM?", Options: []string{"Customer Relationship Management", "Sales Reporting Method", "Company Resource Management", "Client Retention Measure"}, Answer: 0},
		{ID: 6, Question: "What is cold calling?", Options: []string{"Calling in winter", "Contacting potential customers who have not expressed interest", "Calling existing customers", "A marketing technique"}, Answer: 1},
		{ID: 7, Question: "What is upselling?", Options: []string{"Selling at a higher price", "Encouraging customers to buy more expensive items", "A discount technique", "A product bundle"}, Answer: 1},
		{ID: 8, Question: "What is a quota?", Options: []string{"A sales target", "A type of discount", "A product category", "A customer type"}, Answer: 0},
		{ID: 9, Question: "What is objection handling?", Options: []string{"Dealing with customer concerns", "Solving technical problems", "Managing returns", "Processing complaints"}, Answer: 0},
		{ID: 10, Question: "What is follow-up?", Options: []string{"A final meeting", "Continuing communication with prospects", "A sales report", "A product update"}, Answer: 1},
	},
	"HR": {
		{ID: 1, Question: "What is recruitment?", Options: []string{"Hiring new employees", "Training staff", "Firing employees", "Managing payroll"}, Answer: 0},
		{ID: 2, Question: "What is an interview?", Options: []string{"A formal meeting to evaluate candidates", "A performance review", "A salary negotiation", "A training session"}, Answer: 0},
		{ID: 3, Question: "What is performance appraisal?", Options: []string{"Evaluating employee performance", "Appraising company assets", "Reviewing products", "Assessing market value"}, Answer: 0},
		{ID: 4, Question: "What is employee engagement?", Options: []string{"Hiring process", "The involvement and enthusiasm of employees", "A training program", "A benefits package"}, Answer: 1},
		{ID: 5, Question: "What is onboarding?", Options: []string{"The process of integrating new employees", "Ending employment", "A performance review", "A salary discussion"}, Answer: 0},
		{ID: 6, Question: "What is a job description?", Options: []string{"A list of job openings", "A document detailing job responsibilities", "A employee contract", "A company policy"}, Answer: 1},
		{ID: 7, Question: "What is workplace culture?", Options: []string{"Office decorations", "The environment and values of an organization", "A dress code", "A company logo"}, Answer: 1},
		{ID: 8, Question: "What is employee retention?", Options: []string{"Keeping employees in the organization", "A training program", "A performance metric", "A benefit plan"}, Answer: 0},
		{ID: 9, Question: "What is training and development?", Options: []string{"Firing underperforming employees", "Improving employee skills and knowledge", "A recruitment method", "A compensation strategy"}, Answer: 1},
		{ID: 10, Question: "What is conflict resolution?", Options: []string{"A hiring process", "Finding solutions to workplace disagreements", "A performance review", "A termination procedure"}, Answer: 1},
	},
	"Engineering": {
		{ID: 1, Question: "What is the first law of thermodynamics?", Options: []string{"Energy cannot be created or destroyed", "Energy can be created", "Energy decreases over time", "Energy increases forever"}, Answer: 0},
		{ID: 2, Question: "What is CAD?", Options: []string{"Computer Aided Design", "Computer Application Development", "Computer Analysis Data", "Computer Algorithm Design"}, Answer: 0},
		{ID: 3, Question: "What is stress in materials?", Options: []string{"Mental pressure", "Force per unit area", "A type of strain", "A manufacturing defect"}, Answer: 1},
		{ID: 4, Question: "What is a lever?", Options: []string{"A simple machine", "A measurement unit", "A type of material", "A power source"}, Answer: 0},
		{ID: 5, Question: "What is Ohm's law?", Options: []string{"V = IR", "E = mc2", "F = ma", "PV = nRT"}, Answer: 0},
		{ID: 6, Question: "What is a pulley?", Options: []string{"A lifting device", "A measuring tool", "A power source", "A material type"}, Answer: 0},
		{ID: 7, Question: "What is tensile strength?", Options: []string{"The ability to conduct electricity", "The maximum stress a material can withstand", "The ability to resist heat", "The flexibility of a material"}, Answer: 1},
		{ID: 8, Question: "What is a gear?", Options: []string{"A rotating machine element", "A measurement tool", "A power source", "A safety device"}, Answer: 0},
		{ID: 9, Question: "What is structural analysis?", Options: []string{"Analyzing chemical compounds", "Examining the behavior of structures under loads", "Testing materials", "Designing circuits"}, Answer: 1},
		{ID: 10, Question: "What is thermodynamics?", Options: []string{"The study of heat and work", "The study of motion", "The study of electricity", "The study of materials"}, Answer: 0},
	},
}

// DefaultQuestions back the assessment when no field bank is available.
var DefaultQuestions = []Question{
	{ID: 1, Question: "What is your career goal?", Options: []string{"Find a job", "Build skills", "Advance career", "Start business"}, Answer: 0},
	{ID: 2, Question: "How many years of experience do you have?", Options: []string{"None (Fresh Graduate)", "1-2 years", "3-5 years", "5+ years"}, Answer: 0},
	{ID: 3, Question: "What is your education level?", Options: []string{"High School", "Bachelor's Degree", "Master's Degree", "PhD"}, Answer: 1},
	{ID: 4, Question: "Are you currently employed?", Options: []string{"Yes, employed", "No, seeking opportunities", "Self-employed", "Student"}, Answer: 1},
	{ID: 5, Question: "What is your preferred work arrangement?", Options: []string{"Remote", "On-site", "Hybrid", "Flexible"}, Answer: 0},
}

// QuestionsFor returns the bank for the field. Unknown fields fall back to
// the IT bank, the assessment's default subject.
func QuestionsFor(field string) []Question {
	if bank, ok := QuestionBank[field]; ok {
		return bank
	}
	if bank, ok := QuestionBank["IT"]; ok {
		return bank
	}
	return DefaultQuestions
}

// SkillLevelFor maps an assessment score to a skill level.
func SkillLevelFor(score int) string {
	switch {
	case score >= 90:
		return "Expert"
	case score >= 70:
		return "Advanced"
	case score >= 50:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
