package generators

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/errors"
	"github.com/inferloop/tabsynth/pkg/models"
)

// TextGenerator synthesizes string columns: identities, contact details,
// network identifiers, medical codes, and free text. All material comes from
// in-package word tables so a seeded run is fully reproducible.
type TextGenerator struct {
	logger   *logrus.Logger
	rng      *rand.Rand
	subtypes map[string]func(models.Constraints) (string, error)
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
		"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Karen", "Daniel",
		"Nancy", "Matthew", "Lisa", "Anthony", "Betty", "Ahmed", "Margaret",
		"Wei", "Sandra", "Paul", "Ashley", "Andrew", "Kimberly", "Sofia",
		"Emily", "Joshua", "Donna", "Kenneth", "Michelle",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
		"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
		"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	}
	emailDomains = []string{
		"example.com", "example.org", "example.net", "mail.example.com",
		"test.example.org", "demo.example.net",
	}
	streetNames = []string{
		"Main", "Oak", "Maple", "Cedar", "Pine", "Elm", "Washington", "Lake",
		"Hill", "Park", "Sunset", "Ridge", "River", "Church", "Spring",
		"Highland", "Walnut", "Franklin", "Jefferson", "Madison",
	}
	streetSuffixes = []string{"St", "Ave", "Blvd", "Dr", "Ln", "Rd", "Ct", "Way"}
	companyWords   = []string{
		"Global", "Apex", "Nova", "Vertex", "Summit", "Pioneer", "Quantum",
		"Stellar", "Atlas", "Horizon", "Cascade", "Fusion", "Vector", "Prime",
		"Nimbus", "Beacon", "Orbit", "Keystone", "Zenith", "Meridian",
	}
	companySuffixes = []string{"Inc", "LLC", "Corp", "Group", "Labs", "Systems", "Partners", "Holdings"}
	jobTitles       = []string{
		"Software Engineer", "Data Analyst", "Product Manager", "Accountant",
		"Sales Representative", "Marketing Specialist", "Operations Manager",
		"HR Coordinator", "Research Scientist", "Customer Support Agent",
		"Financial Analyst", "UX Designer", "DevOps Engineer", "Nurse",
		"Project Manager", "Technical Writer", "Business Analyst", "Teacher",
		"Electrician", "Logistics Coordinator",
	}
	loremWords = []string{
		"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
		"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
		"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
		"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
		"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
		"in", "reprehenderit", "voluptate",
	}
	countries = []string{
		"United States", "Canada", "Mexico", "Brazil", "United Kingdom",
		"France", "Germany", "Spain", "Italy", "Netherlands", "Sweden",
		"Poland", "Japan", "China", "India", "Australia", "South Korea",
		"Nigeria", "Egypt", "Argentina",
	}
	cities = []string{
		"Springfield", "Riverside", "Franklin", "Greenville", "Bristol",
		"Clinton", "Fairview", "Salem", "Madison", "Georgetown", "Arlington",
		"Ashland", "Burlington", "Manchester", "Milton", "Newport", "Oxford",
		"Clayton", "Lexington", "Dover",
	}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0",
	}
	medications = []string{
		"Acetaminophen", "Ibuprofen", "Aspirin", "Lisinopril", "Metformin",
		"Amlodipine", "Omeprazole", "Simvastatin", "Losartan", "Albuterol",
	}
	diagnosisPrefixes = []string{"A00", "B00", "C00", "D00", "E00", "F00", "G00", "H00", "I00", "J00"}
	urlSchemes        = []string{"http", "https"}
	urlPaths          = []string{"", "/index.html", "/about", "/products", "/blog", "/contact", "/search"}
)

// NewTextGenerator creates the text family generator.
func NewTextGenerator(rng *rand.Rand, logger *logrus.Logger) *TextGenerator {
	if logger == nil {
		logger = logrus.New()
	}

	g := &TextGenerator{logger: logger, rng: rng}
	g.subtypes = map[string]func(models.Constraints) (string, error){
		"name":           g.generateName,
		"email":          g.generateEmail,
		"address":        g.generateAddress,
		"phone":          g.generatePhone,
		"company":        g.generateCompany,
		"job_title":      g.generateJobTitle,
		"description":    g.generateDescription,
		"sentence":       g.generateSentence,
		"paragraph":      g.generateParagraph,
		"url":            g.generateURL,
		"user_agent":     g.generateUserAgent,
		"mac_address":    g.generateMACAddress,
		"credit_card":    g.generateCreditCard,
		"bank_account":   g.generateBankAccount,
		"patient_id":     g.generatePatientID,
		"medical_record": g.generateMedicalRecord,
		"diagnosis_code": g.generateDiagnosisCode,
		"medication":     g.generateMedication,
		"country":        g.generateCountry,
		"city":           g.generateCity,
		"zip_code":       g.generateZipCode,
		"ipv4":           g.generateIPv4,
		"ipv6":           g.generateIPv6,
		"custom":         g.generateCustom,
	}
	return g
}

// Family returns the family name.
func (g *TextGenerator) Family() string { return "text" }

// Subtypes returns the recognized subtype strings.
func (g *TextGenerator) Subtypes() []string {
	names := make([]string, 0, len(g.subtypes))
	for name := range g.subtypes {
		names = append(names, name)
	}
	return names
}

// Generate produces count strings of the given subtype. Unknown subtypes fail
// the column; a failed individual value is replaced by a synthetic
// placeholder with a random four-digit suffix.
func (g *TextGenerator) Generate(count int, subtype string, constraints models.Constraints) ([]interface{}, error) {
	fn, ok := g.subtypes[subtype]
	if !ok {
		return nil, errors.NewUnknownSubtypeError(g.Family(), subtype)
	}

	values := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		value, err := fn(constraints)
		if err != nil {
			g.logger.WithFields(logrus.Fields{
				"subtype": subtype,
				"error":   err,
			}).Debug("text value synthesis failed, using fallback")
			value = fmt.Sprintf("Generated_%d", 1000+g.rng.Intn(9000))
		}
		values = append(values, value)
	}

	return values, nil
}

func (g *TextGenerator) pick(table []string) string {
	return table[g.rng.Intn(len(table))]
}

func (g *TextGenerator) generateName(models.Constraints) (string, error) {
	return g.pick(firstNames) + " " + g.pick(lastNames), nil
}

func (g *TextGenerator) generateEmail(models.Constraints) (string, error) {
	local := fmt.Sprintf("%s.%s%d",
		strings.ToLower(g.pick(firstNames)),
		strings.ToLower(g.pick(lastNames)),
		g.rng.Intn(100))
	return local + "@" + g.pick(emailDomains), nil
}

func (g *TextGenerator) generateAddress(models.Constraints) (string, error) {
	return fmt.Sprintf("%d %s %s", 1+g.rng.Intn(9999), g.pick(streetNames), g.pick(streetSuffixes)), nil
}

func (g *TextGenerator) generatePhone(models.Constraints) (string, error) {
	return fmt.Sprintf("%03d-%03d-%04d", 200+g.rng.Intn(800), g.rng.Intn(1000), g.rng.Intn(10000)), nil
}

func (g *TextGenerator) generateCompany(models.Constraints) (string, error) {
	return g.pick(companyWords) + " " + g.pick(companySuffixes), nil
}

func (g *TextGenerator) generateJobTitle(models.Constraints) (string, error) {
	return g.pick(jobTitles), nil
}

func (g *TextGenerator) generateDescription(models.Constraints) (string, error) {
	return g.loremSentence(12 + g.rng.Intn(18)), nil
}

func (g *TextGenerator) generateSentence(models.Constraints) (string, error) {
	return g.loremSentence(4 + g.rng.Intn(8)), nil
}

func (g *TextGenerator) generateParagraph(models.Constraints) (string, error) {
	sentences := make([]string, 3+g.rng.Intn(3))
	for i := range sentences {
		sentences[i] = g.loremSentence(4 + g.rng.Intn(8))
	}
	return strings.Join(sentences, " "), nil
}

func (g *TextGenerator) generateURL(models.Constraints) (string, error) {
	return fmt.Sprintf("%s://www.%s.%s%s",
		g.pick(urlSchemes),
		strings.ToLower(g.pick(companyWords)),
		g.pick([]string{"com", "org", "net", "io"}),
		g.pick(urlPaths)), nil
}

func (g *TextGenerator) generateUserAgent(models.Constraints) (string, error) {
	return g.pick(userAgents), nil
}

func (g *TextGenerator) generateMACAddress(models.Constraints) (string, error) {
	parts := make([]string, 6)
	for i := range parts {
		parts[i] = fmt.Sprintf("%02x", g.rng.Intn(256))
	}
	return strings.Join(parts, ":"), nil
}

func (g *TextGenerator) generateCreditCard(models.Constraints) (string, error) {
	groups := make([]string, 4)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04d", g.rng.Intn(10000))
	}
	return strings.Join(groups, "-"), nil
}

func (g *TextGenerator) generateBankAccount(models.Constraints) (string, error) {
	digits := make([]byte, 12)
	for i := range digits {
		digits[i] = byte('0' + g.rng.Intn(10))
	}
	return string(digits), nil
}

func (g *TextGenerator) generatePatientID(models.Constraints) (string, error) {
	return fmt.Sprintf("PAT%d", 100000+g.rng.Intn(900000)), nil
}

func (g *TextGenerator) generateMedicalRecord(models.Constraints) (string, error) {
	return fmt.Sprintf("MR%d", 1000000+g.rng.Intn(9000000)), nil
}

func (g *TextGenerator) generateDiagnosisCode(models.Constraints) (string, error) {
	return fmt.Sprintf("%s.%d", g.pick(diagnosisPrefixes), g.rng.Intn(10)), nil
}

func (g *TextGenerator) generateMedication(models.Constraints) (string, error) {
	return g.pick(medications), nil
}

func (g *TextGenerator) generateCountry(models.Constraints) (string, error) {
	return g.pick(countries), nil
}

func (g *TextGenerator) generateCity(models.Constraints) (string, error) {
	return g.pick(cities), nil
}

func (g *TextGenerator) generateZipCode(models.Constraints) (string, error) {
	return fmt.Sprintf("%05d", g.rng.Intn(100000)), nil
}

func (g *TextGenerator) generateIPv4(models.Constraints) (string, error) {
	return fmt.Sprintf("%d.%d.%d.%d",
		1+g.rng.Intn(254), g.rng.Intn(256), g.rng.Intn(256), 1+g.rng.Intn(254)), nil
}

func (g *TextGenerator) generateIPv6(models.Constraints) (string, error) {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", g.rng.Intn(65536))
	}
	return strings.Join(groups, ":"), nil
}

// generateCustom expands {name}, {email}, and {company} placeholders in the
// pattern constraint. Without a pattern it degrades to a single random word.
func (g *TextGenerator) generateCustom(c models.Constraints) (string, error) {
	if c.Pattern == "" {
		return g.pick(loremWords), nil
	}

	result := c.Pattern
	if strings.Contains(result, "{name}") {
		name, _ := g.generateName(c)
		result = strings.ReplaceAll(result, "{name}", name)
	}
	if strings.Contains(result, "{email}") {
		email, _ := g.generateEmail(c)
		result = strings.ReplaceAll(result, "{email}", email)
	}
	if strings.Contains(result, "{company}") {
		company, _ := g.generateCompany(c)
		result = strings.ReplaceAll(result, "{company}", company)
	}
	return result, nil
}

func (g *TextGenerator) loremSentence(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = g.pick(loremWords)
	}
	sentence := strings.Join(parts, " ")
	return strings.ToUpper(sentence[:1]) + sentence[1:] + "."
}
