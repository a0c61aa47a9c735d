package scorer

import (
	"regexp"
	"strings"
	"unicode"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	numberRe   = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	percentRe  = regexp.MustCompile(`\d+(?:\.\d+)?\s?(?:%|percent\b)`)
	currencyRe = regexp.MustCompile(`[$€£]\s?\d`)
)

// Component is one located STAR section. Start and End are byte offsets into
// the caller's answer, so Answer[Start:End] is the section text.
type Component struct {
	Present bool `json:"present"`
	Start   int  `json:"start,omitempty"`
	End     int  `json:"end,omitempty"`
}

// StarComponents holds the located Situation, Task, Action and Result sections.
type StarComponents struct {
	Situation Component `json:"situation"`
	Task      Component `json:"task"`
	Action    Component `json:"action"`
	Result    Component `json:"result"`
}

// Count returns how many components are present.
func (s StarComponents) Count() (n int) {
	for _, c := range []Component{s.Situation, s.Task, s.Action, s.Result} {
		if c.Present {
			n++
		}
	}
	return n
}

// Heuristics is the flat feature bag extracted from an answer.
type Heuristics struct {
	Chars            int            `json:"chars"`
	Words            int            `json:"words"`
	Sentences        int            `json:"sentences"`
	Paragraphs       int            `json:"paragraphs"`
	AvgSentenceWords float64        `json:"avg_sentence_words"`
	Star             StarComponents `json:"star"`
	StarCount        int            `json:"star_count"`
	HasNumbers       bool           `json:"has_numbers"`
	HasPercent       bool           `json:"has_percent"`
	HasCurrency      bool           `json:"has_currency"`
	NumericTokens    int            `json:"numeric_tokens"`
	ResultQuantified bool           `json:"result_quantified"`

	FirstPersonSingular int `json:"first_person_singular"`
	FirstPersonPlural   int `json:"first_person_plural"`

	TechnicalHits     int `json:"technical_hits"`
	CollaborationHits int `json:"collaboration_hits"`
	CultureHits       int `json:"culture_hits"`
	BuzzwordHits      int `json:"buzzword_hits"`
	VagueHits         int `json:"vague_hits"`
	HedgeHits         int `json:"hedge_hits"`

	JDKeywords           int      `json:"jd_keywords"`
	JDMatches            int      `json:"jd_matches"`
	ValuesMatched        []string `json:"values_matched,omitempty"`
	CommunityMatched     int      `json:"community_matched"`
	InterviewerFocusHits int      `json:"interviewer_focus_hits"`
}

// JDOverlap is the fraction of JD keywords referenced by the answer.
func (h Heuristics) JDOverlap() (ratio float64) {
	if h.JDKeywords == 0 {
		return ratio
	}
	ratio = float64(h.JDMatches) / float64(h.JDKeywords)
	return ratio
}

type sentence struct {
	start, end int
	text       string
}

// AnalyzeAnswerHeuristics extracts signal features from the answer text and
// its overlap with the optional context.
func AnalyzeAnswerHeuristics(ctx Context) (h Heuristics) {
	answer := strings.TrimSpace(ctx.Answer)
	lower, origin := foldText(answer)
	lead := strings.Index(ctx.Answer, answer)

	h.Chars = len([]rune(answer))
	h.Words = len(strings.Fields(answer))
	h.Paragraphs = countParagraphs(answer)

	sentences := splitSentences(lower)
	h.Sentences = len(sentences)
	if h.Sentences > 0 {
		h.AvgSentenceWords = float64(h.Words) / float64(h.Sentences)
	}

	h.Star = StarComponents{
		Situation: locate(sentences, situationCues),
		Task:      locate(sentences, taskCues),
		Action:    locate(sentences, actionCues),
		Result:    locate(sentences, resultCues),
	}
	h.StarCount = h.Star.Count()

	numbers := numberRe.FindAllStringIndex(lower, -1)
	h.NumericTokens = len(numbers)
	h.HasNumbers = h.NumericTokens > 0
	h.HasPercent = percentRe.MatchString(lower)
	h.HasCurrency = currencyRe.MatchString(lower)
	if h.Star.Result.Present {
		for _, loc := range numbers {
			if loc[0] >= h.Star.Result.Start {
				h.ResultQuantified = true
				break
			}
		}
	}

	// Spans were found on the folded text; report them on the raw answer
	for _, c := range []*Component{&h.Star.Situation, &h.Star.Task, &h.Star.Action, &h.Star.Result} {
		if c.Present {
			c.Start = lead + origin[c.Start]
			c.End = lead + origin[c.End]
		}
	}

	tokens := tokenize(lower)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
		switch t {
		case "i", "i'm", "i've", "i'd", "i'll", "me", "my", "myself":
			h.FirstPersonSingular++
		case "we", "we're", "we've", "we'd", "our", "us", "ourselves":
			h.FirstPersonPlural++
		}
	}

	h.TechnicalHits = countAny(lower, technicalTerms, true)
	h.CollaborationHits = countAny(lower, collaborationTerms, true)
	h.CultureHits = countAny(lower, cultureTerms, true)
	h.BuzzwordHits = countAny(lower, buzzwords, false)
	h.HedgeHits = countAny(lower, hedgeTerms, false)
	if flag, ok := FindRedFlag(FlagVagueClaims); ok {
		h.VagueHits = countAny(lower, flag.Keywords, false)
	}

	keywords := jdKeywords(ctx.JDCore)
	h.JDKeywords = len(keywords)
	for _, kw := range keywords {
		if hasToken(tokenSet, kw) {
			h.JDMatches++
		}
	}

	for _, v := range ctx.CompanyValues {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if phraseReferenced(lower, tokenSet, v) {
			h.ValuesMatched = append(h.ValuesMatched, v)
		}
	}

	if ctx.MatchMatrix != nil {
		for _, topic := range ctx.MatchMatrix.CommunityTopics {
			if strings.TrimSpace(topic) != "" && phraseReferenced(lower, tokenSet, topic) {
				h.CommunityMatched++
			}
		}
	}

	if ctx.HasInterviewer() {
		iv := ctx.UserProfile.Interviewer
		for _, focus := range append([]string{iv.Title}, iv.Focus...) {
			if strings.TrimSpace(focus) != "" && phraseReferenced(lower, tokenSet, focus) {
				h.InterviewerFocusHits++
			}
		}
	}

	return h
}

func normalizeText(s string) (norm string) {
	norm, _ = foldText(s)
	return norm
}

// foldText lowercases s and straightens curly quotes. origin[i] is the byte
// offset in s of the rune that produced byte i of norm; origin[len(norm)] is len(s).
func foldText(s string) (norm string, origin []int) {
	var b strings.Builder
	b.Grow(len(s))
	origin = make([]int, 0, len(s)+1)

	for i, r := range s {
		switch r {
		case '’', '‘':
			r = '\''
		case '“', '”':
			r = '"'
		default:
			r = unicode.ToLower(r)
		}
		n, _ := b.WriteRune(r)
		for j := 0; j < n; j++ {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(s))

	norm = b.String()
	return norm, origin
}

func countParagraphs(s string) (n int) {
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// splitSentences breaks text on terminal punctuation followed by whitespace,
// and on newlines. Decimal points inside numbers do not split.
func splitSentences(text string) (out []sentence) {
	start := 0
	flush := func(end int) {
		seg := text[start:end]
		if trimmed := strings.TrimSpace(seg); trimmed != "" {
			offset := strings.Index(seg, trimmed)
			out = append(out, sentence{start: start + offset, end: start + offset + len(trimmed), text: trimmed})
		}
		start = end
	}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			flush(i)
			start = i + 1
		case '.', '!', '?':
			if i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t' {
				flush(i + 1)
			}
		}
	}
	if start < len(text) {
		flush(len(text))
	}
	return out
}

func locate(sentences []sentence, cues []string) (c Component) {
	for _, s := range sentences {
		if countAny(s.text, cues, true) > 0 {
			c = Component{Present: true, Start: s.start, End: s.end}
			return c
		}
	}
	return c
}

// countAny counts occurrences of every term in text. Terms must start on a
// word boundary; with prefix unset they must end on one too.
func countAny(text string, terms []string, prefix bool) (n int) {
	for _, term := range terms {
		n += countTerm(text, term, prefix)
	}
	return n
}

func countTerm(text, term string, prefix bool) (n int) {
	if term == "" {
		return n
	}
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			break
		}
		begin := offset + idx
		end := begin + len(term)
		if (begin == 0 || !isWordByte(text[begin-1])) && (prefix || end == len(text) || !isWordByte(text[end])) {
			n++
		}
		offset = end
	}
	return n
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func tokenize(text string) (tokens []string) {
	tokens = strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '+' && r != '#'
	})
	for i, t := range tokens {
		tokens[i] = strings.Trim(t, "'")
	}
	return tokens
}

// hasToken matches a keyword against the token set, tolerating a plural s.
func hasToken(set map[string]bool, kw string) bool {
	if set[kw] || set[kw+"s"] || set[kw+"es"] {
		return true
	}
	return strings.HasSuffix(kw, "s") && set[strings.TrimSuffix(kw, "s")]
}

func significantWords(text string) (words []string) {
	seen := make(map[string]bool)
	for _, t := range tokenize(normalizeText(text)) {
		if len(t) < 3 || stopwords[t] || seen[t] {
			continue
		}
		seen[t] = true
		words = append(words, t)
	}
	return words
}

const maxJDKeywords = 40

func jdKeywords(jd Requirements) (keywords []string) {
	keywords = significantWords(strings.Join(jd, "\n"))
	if len(keywords) > maxJDKeywords {
		keywords = keywords[:maxJDKeywords]
	}
	return keywords
}

// phraseReferenced reports whether the answer mentions a value or topic,
// either verbatim or through at least half of its significant words.
func phraseReferenced(lower string, tokens map[string]bool, phrase string) bool {
	p := normalizeText(strings.TrimSpace(phrase))
	if p == "" {
		return false
	}
	if countTerm(lower, p, true) > 0 {
		return true
	}

	words := significantWords(p)
	if len(words) == 0 {
		return false
	}
	hits := 0
	for _, w := range words {
		if hasToken(tokens, w) {
			hits++
		}
	}
	return hits*2 >= len(words)
}
