package scorer

// Dimension is one scoring axis.
type Dimension string

// Scoring dimensions.
const (
	DimStructure   Dimension = "structure"
	DimSpecificity Dimension = "specificity"
	DimOutcome     Dimension = "outcome"
	DimRole        Dimension = "role"
	DimCompany     Dimension = "company"
	DimPersona     Dimension = "persona"
	DimRisks       Dimension = "risks"
	DimClarity     Dimension = "clarity"
)

// MaxScore is the ceiling of every subscore and of the overall score.
const MaxScore = 100

// DimensionInfo describes a scoring dimension.
type DimensionInfo struct {
	Name        Dimension
	Label       string
	Description string
	BaseWeight  float64
	MaxScore    int
}

//nolint:gochecknoglobals // Scoring configuration constants
var Dimensions = []DimensionInfo{
	{DimStructure, "Structure", "Answer follows Situation, Task, Action, Result", 0.15, MaxScore},
	{DimSpecificity, "Specificity", "Concrete numbers, percentages, money and named tools", 0.15, MaxScore},
	{DimOutcome, "Outcome", "A clear, quantified result", 0.15, MaxScore},
	{DimRole, "Role", "Personal ownership and fit with the job requirements", 0.15, MaxScore},
	{DimCompany, "Company", "Connection to the company's stated values", 0.10, MaxScore},
	{DimPersona, "Persona", "Depth and register suited to the interviewer", 0.15, MaxScore},
	{DimRisks, "Risks", "Absence of red-flag language", 0.10, MaxScore},
	{DimClarity, "Clarity", "Readable sentence length and delivery", 0.05, MaxScore},
}

// PriorityOrder breaks ties between equally scored dimensions. Earlier wins.
//
//nolint:gochecknoglobals // Scoring configuration constants
var PriorityOrder = []Dimension{
	DimRisks,
	DimSpecificity,
	DimOutcome,
	DimRole,
	DimCompany,
	DimStructure,
	DimPersona,
	DimClarity,
}

// PersonaWeights maps a persona to its raw per-dimension weights.
// Weights are normalized before aggregation.
//
//nolint:gochecknoglobals // Scoring configuration constants
var PersonaWeights = map[Persona]map[Dimension]float64{
	PersonaRecruiter: {
		DimStructure:   0.15,
		DimSpecificity: 0.10,
		DimOutcome:     0.10,
		DimRole:        0.10,
		DimCompany:     0.20,
		DimPersona:     0.20,
		DimRisks:       0.10,
		DimClarity:     0.05,
	},
	PersonaHiringManager: {
		DimStructure:   0.15,
		DimSpecificity: 0.20,
		DimOutcome:     0.20,
		DimRole:        0.15,
		DimCompany:     0.05,
		DimPersona:     0.10,
		DimRisks:       0.10,
		DimClarity:     0.05,
	},
	PersonaPeer: {
		DimStructure:   0.10,
		DimSpecificity: 0.15,
		DimOutcome:     0.10,
		DimRole:        0.20,
		DimCompany:     0.05,
		DimPersona:     0.20,
		DimRisks:       0.10,
		DimClarity:     0.10,
	},
}

// NormalizedWeights returns the persona's weights scaled to sum to 1.
// Unknown personas use DefaultPersona; an all-zero vector falls back to
// the dimensions' base weights.
func NormalizedWeights(p Persona) (weights map[Dimension]float64) {
	raw := PersonaWeights[p.Normalize()]

	total := 0.0
	for _, d := range Dimensions {
		if w := raw[d.Name]; w > 0 {
			total += w
		}
	}

	weights = make(map[Dimension]float64, len(Dimensions))
	if total == 0 {
		for _, d := range Dimensions {
			total += d.BaseWeight
		}
		for _, d := range Dimensions {
			weights[d.Name] = d.BaseWeight / total
		}
		return weights
	}

	for _, d := range Dimensions {
		w := raw[d.Name]
		if w < 0 {
			w = 0
		}
		weights[d.Name] = w / total
	}
	return weights
}

// Flag names.
const (
	FlagIncompleteAnswer   = "incomplete-answer"
	FlagOverconfidence     = "overconfidence"
	FlagDismissiveLanguage = "dismissive-language"
	FlagVagueClaims        = "vague-claims"
	FlagBuzzwordHeavy      = "buzzword-heavy"
	FlagNoMetric           = "no-metric"
	FlagMissingResult      = "missing-result"
)

// RedFlag is a catalog entry for a negative answer pattern.
type RedFlag struct {
	Name        string
	Description string
	Severity    string // critical, major, minor
	Penalty     int    // negative points taken from the overall score
	Keywords    []string
	MinHits     int
	// Condition, when set, is a structural trigger evaluated on the heuristics.
	// With keywords present both must hold.
	Condition func(h Heuristics, opts Options) bool
	// Ceiling caps the overall score when the flag triggers. Zero means none.
	Ceiling int
	// Dimension receives the penalty as well as the overall score.
	Dimension Dimension
}

//nolint:gochecknoglobals // Scoring configuration constants
var RedFlags = []RedFlag{
	{
		Name:        FlagIncompleteAnswer,
		Description: "Answer is too short to tell a complete story",
		Severity:    "major",
		Penalty:     -20,
		Condition: func(h Heuristics, opts Options) bool {
			return isShort(h, opts)
		},
		Dimension: DimStructure,
	},
	{
		Name:        FlagOverconfidence,
		Description: "Superlative or self-aggrandizing language",
		Severity:    "critical",
		Penalty:     -15,
		Keywords: []string{
			"genius", "revolutionized", "revolutionised", "nobody else", "no one else", "only one who",
			"only person who", "single-handedly", "singlehandedly", "best engineer", "i'm the best",
			"i am the best", "flawless", "never fail", "never made a mistake", "always right",
			"carried the team", "without me", "saved the company", "rockstar of", "i alone",
		},
		MinHits:   1,
		Ceiling:   15,
		Dimension: DimRisks,
	},
	{
		Name:        FlagDismissiveLanguage,
		Description: "Blames or belittles other people",
		Severity:    "major",
		Penalty:     -12,
		Keywords: []string{
			"incompetent", "useless", "idiot", "idiots", "stupid", "lazy", "their fault", "his fault",
			"her fault", "clueless", "waste of time", "didn't listen", "did not listen", "just followed",
		},
		MinHits:   1,
		Dimension: DimRisks,
	},
	{
		Name:        FlagVagueClaims,
		Description: "Generic claims without specifics",
		Severity:    "minor",
		Penalty:     -8,
		Keywords: []string{
			"things", "stuff", "various", "a lot", "etc", "basically", "kind of", "sort of",
			"worked on", "helped with", "was involved", "somehow", "good", "fine", "some",
		},
		MinHits: 2,
		Condition: func(h Heuristics, _ Options) bool {
			return !h.HasNumbers
		},
		Dimension: DimSpecificity,
	},
	{
		Name:        FlagBuzzwordHeavy,
		Description: "Relies on buzzwords instead of substance",
		Severity:    "minor",
		Penalty:     -4,
		Keywords:    buzzwords,
		MinHits:     2,
		Dimension:   DimClarity,
	},
	{
		Name:        FlagNoMetric,
		Description: "A full-length answer with no numbers at all",
		Severity:    "minor",
		Penalty:     -5,
		Condition: func(h Heuristics, opts Options) bool {
			return !isShort(h, opts) && !h.HasNumbers
		},
		Dimension: DimSpecificity,
	},
	{
		Name:        FlagMissingResult,
		Description: "A full-length answer that never states a result",
		Severity:    "minor",
		Penalty:     -6,
		Condition: func(h Heuristics, opts Options) bool {
			return !isShort(h, opts) && !h.Star.Result.Present
		},
		Dimension: DimOutcome,
	},
}

// FindRedFlag looks up a catalog entry by name.
func FindRedFlag(name string) (flag RedFlag, ok bool) {
	for _, f := range RedFlags {
		if f.Name == name {
			flag = f
			ok = true
			return flag, ok
		}
	}
	return flag, ok
}

// Options tunes thresholds of the scoring rules.
type Options struct {
	MinAnswerWords   int // answers below this are incomplete
	MinAnswerChars   int
	ShortAnswerCap   int // overall cap for short answers
	FlagCeilingCount int // this many flags or more trigger FlagCountCap
	FlagCountCap     int
	MaxPenalty       int // cumulative flag penalty bound, positive
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() (opts Options) {
	opts = Options{
		MinAnswerWords:   25,
		MinAnswerChars:   120,
		ShortAnswerCap:   45,
		FlagCeilingCount: 3,
		FlagCountCap:     55,
		MaxPenalty:       40,
	}
	return opts
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() (opts Options) {
	def := DefaultOptions()
	opts = o
	if opts.MinAnswerWords <= 0 {
		opts.MinAnswerWords = def.MinAnswerWords
	}
	if opts.MinAnswerChars <= 0 {
		opts.MinAnswerChars = def.MinAnswerChars
	}
	if opts.ShortAnswerCap <= 0 {
		opts.ShortAnswerCap = def.ShortAnswerCap
	}
	if opts.FlagCeilingCount <= 0 {
		opts.FlagCeilingCount = def.FlagCeilingCount
	}
	if opts.FlagCountCap <= 0 {
		opts.FlagCountCap = def.FlagCountCap
	}
	if opts.MaxPenalty <= 0 {
		opts.MaxPenalty = def.MaxPenalty
	}
	return opts
}

func isShort(h Heuristics, opts Options) bool {
	return h.Words < opts.MinAnswerWords || h.Chars < opts.MinAnswerChars
}

// Vocabularies used by the heuristics.
//
//nolint:gochecknoglobals // Scoring configuration constants
var (
	situationCues = []string{
		"situation", "context", "background", "at my previous", "at my last", "at my current",
		"when i was", "we were facing", "we faced", "the problem was", "the challenge was",
		"challenge", "problem", "previously", "last year", "in my role",
	}
	taskCues = []string{
		"task", "my goal", "the goal", "goal was", "i was responsible", "responsible for",
		"needed to", "had to", "objective", "i was asked", "assigned", "my job was", "was tasked",
	}
	actionCues = []string{
		"action", "i led", "i built", "i designed", "i implemented", "i created", "i developed",
		"i decided", "i worked with", "i organized", "i analyzed", "i analysed", "i introduced",
		"i migrated", "i proposed", "i drove", "i ran", "i coordinated", "i wrote", "i set up",
		"i started", "i partnered", "i rolled out", "i automated", "we built", "we implemented",
		"implemented", "designed",
	}
	resultCues = []string{
		"result", "as a result", "outcome", "achieved", "reduced", "increased", "improved",
		"saved", "grew", "delivered", "resulting in", "led to", "impact", "cut", "boosted",
	}
	technicalTerms = []string{
		"api", "latency", "architecture", "database", "scalab", "scaling", "deploy", "pipeline",
		"infrastructure", "algorithm", "cache", "caching", "kubernetes", "microservice", "performance",
		"query", "queries", "code", "system", "migration", "throughput", "index", "profil",
		"benchmark", "trade-off", "tradeoff", "refactor", "service", "backend", "frontend",
	}
	collaborationTerms = []string{
		"team", "collaborat", "stakeholder", "cross-functional", "mentor", "partner", "aligned",
		"communicat", "together", "peers", "colleague", "pair", "feedback", "consensus", "unblock",
	}
	cultureTerms = []string{
		"culture", "values", "passion", "motivat", "growth", "learn", "customer", "mission",
		"ownership", "trust", "inclusive", "curious",
	}
	buzzwords = []string{
		"synergy", "synergies", "leverage", "rockstar", "ninja", "guru", "game changer",
		"game-changer", "disrupt", "paradigm", "best-in-class", "world-class", "thought leader",
		"go-getter", "outside the box", "move the needle", "low-hanging fruit",
	}
	hedgeTerms = []string{
		"i think", "i guess", "maybe", "probably", "i believe", "hopefully", "more or less",
	}
	stopwords = map[string]bool{
		"and": true, "the": true, "with": true, "for": true, "from": true, "that": true,
		"this": true, "have": true, "will": true, "your": true, "you": true, "our": true,
		"are": true, "experience": true, "years": true, "ability": true, "strong": true,
		"work": true, "working": true, "including": true, "such": true, "using": true,
		"role": true, "team": true, "must": true, "plus": true, "preferred": true,
		"required": true, "requirements": true, "skills": true, "knowledge": true,
	}
)
