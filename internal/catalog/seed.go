package catalog

import "careerflix/backend/internal/model"

// SeedJobs is the bundled catalog used to populate an empty jobs table on
// first boot.
var SeedJobs = []model.Job{
	{
		ID: 1, Title: "Backend Engineer", Company: "Flipkart",
		Description: "Build scalable backend services with Python and PostgreSQL for the order pipeline.",
		Location:    "Bangalore", Mode: "Hybrid", Experience: "1-3",
		Skills:      []string{"Python", "PostgreSQL", "Django"},
		SalaryRange: "₹12-18 LPA", PostedDaysAgo: 1, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3801",
	},
	{
		ID: 2, Title: "Frontend Developer", Company: "Zerodha",
		Description: "Own the trading dashboard UI. Strong React and TypeScript required.",
		Location:    "Remote", Mode: "Remote", Experience: "1-3",
		Skills:      []string{"React", "TypeScript", "CSS"},
		SalaryRange: "₹10-15 LPA", PostedDaysAgo: 0, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3802",
	},
	{
		ID: 3, Title: "Data Analyst", Company: "Swiggy",
		Description: "Analyze delivery metrics with SQL and Python, build dashboards for operations.",
		Location:    "Bangalore", Mode: "Onsite", Experience: "0-1",
		Skills:      []string{"SQL", "Python", "Tableau"},
		SalaryRange: "₹6-9 LPA", PostedDaysAgo: 3, Source: "Naukri",
		ApplyURL: "https://www.naukri.com/job-listings-3803",
	},
	{
		ID: 4, Title: "DevOps Engineer", Company: "Razorpay",
		Description: "Run Kubernetes clusters and CI/CD pipelines for payment infrastructure.",
		Location:    "Remote", Mode: "Remote", Experience: "3-5",
		Skills:      []string{"Kubernetes", "Docker", "AWS", "Terraform"},
		SalaryRange: "₹20-28 LPA", PostedDaysAgo: 2, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3804",
	},
	{
		ID: 5, Title: "Full Stack Developer", Company: "CRED",
		Description: "Ship features across a Node.js backend and React frontend.",
		Location:    "Bangalore", Mode: "Hybrid", Experience: "1-3",
		Skills:      []string{"Node.js", "React", "MongoDB"},
		SalaryRange: "₹14-20 LPA", PostedDaysAgo: 5, Source: "Indeed",
		ApplyURL: "https://www.indeed.com/viewjob?jk=3805",
	},
	{
		ID: 6, Title: "Machine Learning Engineer", Company: "Fractal",
		Description: "Train and deploy ML models for retail forecasting. Python, PyTorch, MLOps.",
		Location:    "Mumbai", Mode: "Hybrid", Experience: "3-5",
		Skills:      []string{"Python", "PyTorch", "MLOps"},
		SalaryRange: "₹18-25 LPA", PostedDaysAgo: 4, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3806",
	},
	{
		ID: 7, Title: "QA Engineer", Company: "Freshworks",
		Description: "Automate regression suites with Selenium and Playwright.",
		Location:    "Chennai", Mode: "Onsite", Experience: "0-1",
		Skills:      []string{"Selenium", "Playwright", "Java"},
		SalaryRange: "₹5-8 LPA", PostedDaysAgo: 7, Source: "Naukri",
		ApplyURL: "https://www.naukri.com/job-listings-3807",
	},
	{
		ID: 8, Title: "Backend Developer Intern", Company: "Postman",
		Description: "Work with Go services powering the public API platform.",
		Location:    "Remote", Mode: "Remote", Experience: "Fresher",
		Skills:      []string{"Go", "REST", "SQL"},
		SalaryRange: "₹40k/month stipend", PostedDaysAgo: 0, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3808",
	},
	{
		ID: 9, Title: "Android Developer", Company: "PhonePe",
		Description: "Build payment flows in Kotlin with Jetpack Compose.",
		Location:    "Pune", Mode: "Hybrid", Experience: "1-3",
		Skills:      []string{"Kotlin", "Android", "Compose"},
		SalaryRange: "₹13-17 LPA", PostedDaysAgo: 6, Source: "Indeed",
		ApplyURL: "https://www.indeed.com/viewjob?jk=3809",
	},
	{
		ID: 10, Title: "Site Reliability Engineer", Company: "Atlassian",
		Description: "Own availability and observability for cloud products. Go or Python plus Kubernetes.",
		Location:    "Remote", Mode: "Remote", Experience: "3-5",
		Skills:      []string{"Go", "Kubernetes", "Prometheus"},
		SalaryRange: "₹30-45 LPA", PostedDaysAgo: 2, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3810",
	},
	{
		ID: 11, Title: "Product Designer", Company: "Groww",
		Description: "Design investment journeys end to end in Figma.",
		Location:    "Bangalore", Mode: "Onsite", Experience: "1-3",
		Skills:      []string{"Figma", "Prototyping", "UX Research"},
		SalaryRange: "₹9-14 LPA", PostedDaysAgo: 8, Source: "Naukri",
		ApplyURL: "https://www.naukri.com/job-listings-3811",
	},
	{
		ID: 12, Title: "Data Engineer", Company: "Meesho",
		Description: "Build Spark pipelines on the lakehouse. Strong SQL and Python.",
		Location:    "Bangalore", Mode: "Hybrid", Experience: "1-3",
		Skills:      []string{"Spark", "Python", "SQL", "Airflow"},
		SalaryRange: "₹15-22 LPA", PostedDaysAgo: 1, Source: "LinkedIn",
		ApplyURL: "https://www.linkedin.com/jobs/view/3812",
	},
}
