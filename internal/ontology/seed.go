package ontology

// skillAliases maps common spelling variants onto canonical skill names.
// Applied during normalization, before any graph lookup.
var skillAliases = map[string]string{
	"ml":                     "machine learning",
	"ai":                     "machine learning",
	"artificial intelligence": "machine learning",
	"deep learning":          "machine learning",
	"js":                     "javascript",
	"ecmascript":             "javascript",
	"react.js":               "react",
	"reactjs":                "react",
	"nodejs":                 "node.js",
	"node":                   "node.js",
	"py":                     "python",
	"python3":                "python",
	"amazon web services":    "aws",
	"aws cloud":              "aws",
	"google cloud":           "gcp",
	"google cloud platform":  "gcp",
	"microsoft azure":        "azure",
	"data sci":               "data science",
	"data analytics":         "data science",
	"statistical analysis":   "statistics",
	"statistical modeling":   "statistics",
	"postgres":               "postgresql",
	"structured query language": "sql",
	"version control":        "git",
}

// DefaultNodes is the curated seed graph. Additional skill sources may be
// merged offline; seed relations take precedence over merged ones.
func DefaultNodes() []Node {
	return []Node{
		{
			Name:          "python",
			Category:      "programming",
			Synonyms:      []string{"py", "python3", "python2"},
			RelatedSkills: []string{"django", "flask", "pandas", "numpy", "scikit-learn"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "finance": 0.7, "healthcare": 0.6, "startup": 0.7,
			},
			Prerequisites: []string{"programming fundamentals"},
		},
		{
			Name:          "javascript",
			Category:      "programming",
			Synonyms:      []string{"js", "ecmascript"},
			RelatedSkills: []string{"react", "angular", "vue", "node.js", "express"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "startup": 0.8, "finance": 0.4,
			},
			Prerequisites: []string{"html", "css"},
		},
		{
			Name:          "java",
			Category:      "programming",
			Synonyms:      []string{"java8", "java11", "jdk"},
			RelatedSkills: []string{"spring", "spring boot", "hibernate", "maven", "gradle"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "finance": 0.7, "enterprise": 0.9,
			},
			Prerequisites: []string{"object-oriented programming"},
		},
		{
			Name:          "spring boot",
			Category:      "web_backend",
			Synonyms:      []string{"springboot", "spring framework"},
			RelatedSkills: []string{"java", "spring", "maven", "hibernate", "rest api", "microservices"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "enterprise": 0.9, "finance": 0.7,
			},
			Prerequisites: []string{"java"},
		},
		{
			Name:          "react",
			Category:      "web_frontend",
			Synonyms:      []string{"reactjs", "react.js"},
			RelatedSkills: []string{"javascript", "jsx", "redux", "next.js"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "startup": 0.8,
			},
			Prerequisites: []string{"javascript", "html", "css"},
		},
		{
			Name:          "css",
			Category:      "web_frontend",
			Synonyms:      []string{"cascading style sheets", "css3"},
			RelatedSkills: []string{"html", "sass", "bootstrap", "tailwind", "responsive design"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "startup": 0.6,
			},
			Prerequisites: []string{"html"},
		},
		{
			Name:          "node.js",
			Category:      "web_backend",
			Synonyms:      []string{"nodejs", "node"},
			RelatedSkills: []string{"javascript", "express", "npm", "mongodb"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "startup": 0.9, "enterprise": 0.6,
			},
			Prerequisites: []string{"javascript"},
		},
		{
			Name:          "machine learning",
			Category:      "ai_ml",
			Synonyms:      []string{"ml", "ai", "artificial intelligence"},
			RelatedSkills: []string{"python", "pandas", "scikit-learn", "tensorflow", "pytorch", "statistics"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "finance": 0.8, "healthcare": 0.7, "startup": 0.7,
			},
			Prerequisites: []string{"python", "statistics", "linear algebra"},
		},
		{
			Name:          "data science",
			Category:      "data_science",
			Synonyms:      []string{"data scientist", "data analysis"},
			RelatedSkills: []string{"python", "pandas", "numpy", "scikit-learn", "sql", "statistics"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "finance": 0.9, "healthcare": 0.8, "startup": 0.7,
			},
			Prerequisites: []string{"python", "statistics", "sql"},
		},
		{
			Name:          "pandas",
			Category:      "data_science",
			Synonyms:      []string{"pandas library"},
			RelatedSkills: []string{"python", "numpy", "matplotlib", "jupyter"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "finance": 0.9, "healthcare": 0.7,
			},
			Prerequisites: []string{"python"},
		},
		{
			Name:          "statistics",
			Category:      "data_science",
			Synonyms:      []string{"stats"},
			RelatedSkills: []string{"machine learning", "data science", "python", "r"},
			IndustryRelevance: map[string]float64{
				"technology": 0.7, "finance": 0.9, "healthcare": 0.9,
			},
		},
		{
			Name:          "aws",
			Category:      "cloud",
			Synonyms:      []string{"amazon web services", "amazon cloud"},
			RelatedSkills: []string{"lambda", "ec2", "s3", "dynamodb", "cloudformation", "docker"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "enterprise": 0.8, "startup": 0.7,
			},
			Prerequisites: []string{"cloud concepts", "linux"},
		},
		{
			Name:          "lambda",
			Category:      "cloud",
			Synonyms:      []string{"aws lambda", "serverless"},
			RelatedSkills: []string{"aws", "python", "javascript", "api gateway", "dynamodb"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "startup": 0.9, "enterprise": 0.7,
			},
			Prerequisites: []string{"aws"},
		},
		{
			Name:          "ec2",
			Category:      "cloud",
			Synonyms:      []string{"aws ec2", "elastic compute cloud"},
			RelatedSkills: []string{"aws", "linux", "docker", "terraform"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "enterprise": 0.9, "startup": 0.7,
			},
			Prerequisites: []string{"aws", "linux"},
		},
		{
			Name:          "docker",
			Category:      "devops",
			Synonyms:      []string{"containers", "containerization"},
			RelatedSkills: []string{"kubernetes", "helm", "ci/cd", "linux", "aws"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "enterprise": 0.7, "startup": 0.9,
			},
			Prerequisites: []string{"linux"},
		},
		{
			Name:          "kubernetes",
			Category:      "devops",
			Synonyms:      []string{"k8s"},
			RelatedSkills: []string{"docker", "helm", "ci/cd", "aws"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "enterprise": 0.8, "startup": 0.7,
			},
			Prerequisites: []string{"docker"},
		},
		{
			Name:          "sql",
			Category:      "databases",
			Synonyms:      []string{"structured query language"},
			RelatedSkills: []string{"mysql", "postgresql", "mongodb", "redis"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "finance": 0.9, "healthcare": 0.7,
			},
			Prerequisites: []string{"database concepts"},
		},
		{
			Name:          "mysql",
			Category:      "databases",
			Synonyms:      []string{"mysql database", "mysql server"},
			RelatedSkills: []string{"sql", "postgresql", "database design", "indexing"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "enterprise": 0.7, "startup": 0.6,
			},
			Prerequisites: []string{"sql"},
		},
		{
			Name:          "postgresql",
			Category:      "databases",
			Synonyms:      []string{"postgres"},
			RelatedSkills: []string{"sql", "mysql", "database design"},
			IndustryRelevance: map[string]float64{
				"technology": 0.8, "enterprise": 0.7, "startup": 0.7,
			},
			Prerequisites: []string{"sql"},
		},
		{
			Name:          "mongodb",
			Category:      "databases",
			Synonyms:      []string{"mongo", "document database"},
			RelatedSkills: []string{"node.js", "python", "javascript", "json"},
			IndustryRelevance: map[string]float64{
				"technology": 0.7, "startup": 0.8, "enterprise": 0.5,
			},
			Prerequisites: []string{"database concepts"},
		},
		{
			Name:          "git",
			Category:      "development_tools",
			Synonyms:      []string{"version control", "source control"},
			RelatedSkills: []string{"github", "gitlab", "bitbucket", "bash"},
			IndustryRelevance: map[string]float64{
				"technology": 0.9, "startup": 0.9, "enterprise": 0.8,
			},
		},
	}
}

// Default returns a graph seeded with the curated node set.
func Default() *Graph {
	return New(DefaultNodes())
}
