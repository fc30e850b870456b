package jobs

// Entry is a lightweight catalog row used by the random generators and the
// category statistics.
type Entry struct {
	Key            string `json:"key"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	AutomationRisk int    `json:"automationRisk"`
}

// extended is the wider table behind the generator endpoints.
var extended = []Entry{
	// Finance & Accounting
	{"junior accountant", "Junior Accountant", "Finance", 88},
	{"senior accountant", "Senior Accountant", "Finance", 75},
	{"financial analyst", "Financial Analyst", "Finance", 45},
	{"investment banker", "Investment Banker", "Finance", 25},
	{"auditor", "Auditor", "Finance", 70},
	{"bookkeeper", "Bookkeeper", "Finance", 92},
	{"tax preparer", "Tax Preparer", "Finance", 85},
	{"credit analyst", "Credit Analyst", "Finance", 60},
	{"treasurer", "Treasurer", "Finance", 35},
	{"financial advisor", "Financial Advisor", "Finance", 40},

	// Technology
	{"software developer", "Software Developer", "Technology", 23},
	{"data scientist", "Data Scientist", "Technology", 35},
	{"web developer", "Web Developer", "Technology", 40},
	{"devops engineer", "DevOps Engineer", "Technology", 30},
	{"product manager", "Product Manager", "Technology", 20},
	{"system administrator", "System Administrator", "Technology", 45},
	{"database administrator", "Database Administrator", "Technology", 50},
	{"network engineer", "Network Engineer", "Technology", 35},
	{"cybersecurity analyst", "Cybersecurity Analyst", "Technology", 25},
	{"machine learning engineer", "Machine Learning Engineer", "Technology", 15},

	// Healthcare
	{"nurse", "Nurse", "Healthcare", 18},
	{"doctor", "Doctor", "Healthcare", 12},
	{"medical technician", "Medical Technician", "Healthcare", 55},
	{"pharmacist", "Pharmacist", "Healthcare", 30},
	{"physical therapist", "Physical Therapist", "Healthcare", 20},
	{"radiologist", "Radiologist", "Healthcare", 40},
	{"medical assistant", "Medical Assistant", "Healthcare", 65},
	{"dental hygienist", "Dental Hygienist", "Healthcare", 25},
	{"respiratory therapist", "Respiratory Therapist", "Healthcare", 30},
	{"occupational therapist", "Occupational Therapist", "Healthcare", 15},

	// Education
	{"teacher", "Teacher", "Education", 45},
	{"professor", "Professor", "Education", 30},
	{"tutor", "Tutor", "Education", 50},
	{"school administrator", "School Administrator", "Education", 35},
	{"librarian", "Librarian", "Education", 60},
	{"guidance counselor", "Guidance Counselor", "Education", 25},
	{"special education teacher", "Special Education Teacher", "Education", 20},
	{"curriculum developer", "Curriculum Developer", "Education", 40},
	{"educational consultant", "Educational Consultant", "Education", 30},
	{"online instructor", "Online Instructor", "Education", 55},

	// Retail & Customer Service
	{"cashier", "Cashier", "Retail", 92},
	{"customer service representative", "Customer Service Representative", "Retail", 82},
	{"sales associate", "Sales Associate", "Retail", 70},
	{"store manager", "Store Manager", "Retail", 45},
	{"retail supervisor", "Retail Supervisor", "Retail", 50},
	{"inventory specialist", "Inventory Specialist", "Retail", 80},
	{"loss prevention specialist", "Loss Prevention Specialist", "Retail", 60},
	{"merchandiser", "Merchandiser", "Retail", 65},
	{"retail buyer", "Retail Buyer", "Retail", 40},
	{"customer success manager", "Customer Success Manager", "Retail", 35},

	// Creative & Media
	{"graphic designer", "Graphic Designer", "Media", 67},
	{"content writer", "Content Writer", "Media", 75},
	{"video editor", "Video Editor", "Media", 58},
	{"photographer", "Photographer", "Media", 45},
	{"journalist", "Journalist", "Media", 60},
	{"social media manager", "Social Media Manager", "Media", 70},
	{"marketing specialist", "Marketing Specialist", "Media", 55},
	{"public relations specialist", "Public Relations Specialist", "Media", 40},
	{"copywriter", "Copywriter", "Media", 65},
	{"art director", "Art Director", "Media", 35},

	// Legal
	{"lawyer", "Lawyer", "Legal", 34},
	{"paralegal", "Paralegal", "Legal", 65},
	{"legal assistant", "Legal Assistant", "Legal", 75},
	{"court reporter", "Court Reporter", "Legal", 80},
	{"legal secretary", "Legal Secretary", "Legal", 85},
	{"compliance officer", "Compliance Officer", "Legal", 45},
	{"contract administrator", "Contract Administrator", "Legal", 60},
	{"intellectual property specialist", "Intellectual Property Specialist", "Legal", 50},
	{"litigation support specialist", "Litigation Support Specialist", "Legal", 55},
	{"legal researcher", "Legal Researcher", "Legal", 70},

	// Manufacturing
	{"factory worker", "Factory Worker", "Manufacturing", 85},
	{"quality inspector", "Quality Inspector", "Manufacturing", 78},
	{"production supervisor", "Production Supervisor", "Manufacturing", 50},
	{"machine operator", "Machine Operator", "Manufacturing", 80},
	{"industrial engineer", "Industrial Engineer", "Manufacturing", 30},
	{"maintenance technician", "Maintenance Technician", "Manufacturing", 40},
	{"welder", "Welder", "Manufacturing", 60},
	{"assembler", "Assembler", "Manufacturing", 85},
	{"machinist", "Machinist", "Manufacturing", 65},
	{"safety coordinator", "Safety Coordinator", "Manufacturing", 45},

	// Administrative & Office
	{"administrative assistant", "Administrative Assistant", "Administrative", 75},
	{"executive assistant", "Executive Assistant", "Administrative", 60},
	{"office manager", "Office Manager", "Administrative", 55},
	{"receptionist", "Receptionist", "Administrative", 80},
	{"data entry clerk", "Data Entry Clerk", "Administrative", 95},
	{"file clerk", "File Clerk", "Administrative", 90},
	{"secretary", "Secretary", "Administrative", 85},
	{"coordinator", "Coordinator", "Administrative", 65},
	{"scheduler", "Scheduler", "Administrative", 70},
	{"records manager", "Records Manager", "Administrative", 75},

	// Management
	{"project manager", "Project Manager", "Management", 35},
	{"operations manager", "Operations Manager", "Management", 40},
	{"human resources manager", "Human Resources Manager", "Management", 45},
	{"marketing manager", "Marketing Manager", "Management", 30},
	{"sales manager", "Sales Manager", "Management", 35},
	{"finance manager", "Finance Manager", "Management", 40},
	{"general manager", "General Manager", "Management", 25},
	{"department head", "Department Head", "Management", 30},
	{"team lead", "Team Lead", "Management", 35},
	{"supervisor", "Supervisor", "Management", 40},
}

var degenTitles = []string{
	"Crypto Vibes Manager",
	"Chief Meme Officer",
	"Blockchain Whisperer",
	"NFT Curator",
	"Metaverse Architect",
	"TikTok Shaman",
	"AI Therapist",
	"Digital Nomad Coordinator",
	"Influencer Wrangler",
	"Productivity Guru",
	"Vibe Consultant",
	"Energy Healer",
	"Crystal Grid Designer",
	"Aura Photographer",
	"Chakra Balancer",
	"Moon Phase Coordinator",
	"Astral Projection Guide",
	"Quantum Manifestation Coach",
	"Reality Shifter",
	"Consciousness Expander",
	"Vibrational Frequency Tuner",
	"Ethereal Experience Designer",
	"Cosmic Alignment Specialist",
	"Dimensional Gateway Operator",
	"Soul Purpose Navigator",
}
