package textproc

// Per-language stop-word tables. The English table is the workhorse; the
// other lists cover the function words that otherwise dominate keyword
// density in multilingual corpora. Unknown languages fall back to English.

var englishStopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {}, "afterwards": {},
	"again": {}, "against": {}, "all": {}, "almost": {}, "alone": {}, "along": {},
	"already": {}, "also": {}, "although": {}, "always": {}, "am": {}, "among": {},
	"amongst": {}, "amount": {}, "an": {}, "and": {}, "another": {}, "any": {},
	"anyhow": {}, "anyone": {}, "anything": {}, "anyway": {}, "anywhere": {},
	"are": {}, "aren't": {}, "around": {}, "as": {}, "at": {},

	"back": {}, "be": {}, "became": {}, "because": {}, "become": {}, "becomes": {},
	"becoming": {}, "been": {}, "before": {}, "beforehand": {}, "behind": {},
	"being": {}, "below": {}, "beside": {}, "besides": {}, "between": {},
	"beyond": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "can't": {}, "cannot": {}, "could": {}, "couldn't": {},

	"did": {}, "didn't": {}, "do": {}, "does": {}, "doesn't": {}, "doing": {},
	"don't": {}, "done": {}, "down": {}, "during": {},

	"each": {}, "either": {}, "else": {}, "elsewhere": {}, "enough": {},
	"etc": {}, "even": {}, "ever": {}, "every": {}, "everyone": {},
	"everything": {}, "everywhere": {},

	"few": {}, "for": {}, "former": {}, "formerly": {}, "from": {},
	"further": {},

	"had": {}, "hadn't": {}, "has": {}, "hasn't": {}, "have": {}, "haven't": {},
	"having": {}, "he": {}, "hence": {}, "her": {}, "here": {}, "hers": {},
	"herself": {}, "him": {}, "himself": {}, "his": {}, "how": {}, "however": {},

	"i": {}, "if": {}, "in": {}, "indeed": {}, "into": {}, "is": {}, "isn't": {},
	"it": {}, "it's": {}, "its": {}, "itself": {},

	"just": {},

	"last": {}, "latter": {}, "least": {}, "less": {}, "let": {}, "like": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "maybe": {}, "me": {},
	"meanwhile": {}, "might": {}, "mine": {}, "more": {}, "moreover": {},
	"most": {}, "mostly": {}, "much": {}, "must": {}, "my": {}, "myself": {},

	"neither": {}, "never": {}, "nevertheless": {}, "next": {}, "no": {},
	"nobody": {}, "none": {}, "nor": {}, "not": {}, "nothing": {}, "now": {},
	"nowhere": {},

	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {},

	"per": {}, "perhaps": {}, "please": {}, "put": {},

	"rather": {}, "same": {}, "several": {}, "she": {}, "should": {},
	"shouldn't": {}, "since": {}, "so": {}, "some": {}, "somehow": {},
	"someone": {}, "something": {}, "sometimes": {}, "somewhere": {},
	"still": {}, "such": {},

	"take": {}, "than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "themselves": {}, "then": {}, "there": {}, "therefore": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"throughout": {}, "thus": {}, "to": {}, "together": {}, "too": {},
	"toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},

	"very": {}, "via": {},

	"was": {}, "wasn't": {}, "we": {}, "well": {}, "were": {}, "weren't": {},
	"what": {}, "when": {}, "whenever": {}, "where": {}, "whereas": {},
	"whether": {}, "which": {}, "while": {}, "who": {}, "whose": {}, "why": {},
	"with": {}, "within": {}, "without": {}, "won't": {}, "would": {},
	"wouldn't": {},

	"yet": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},
	"yourselves": {},
}

var spanishStopwords = setOf(
	"a", "al", "algo", "como", "con", "cual", "cuando", "de", "del", "desde",
	"donde", "durante", "e", "el", "ella", "ellas", "ellos", "en", "entre",
	"era", "es", "esa", "ese", "eso", "esta", "este", "esto", "fue", "ha",
	"han", "hay", "la", "las", "le", "les", "lo", "los", "más", "mas", "me",
	"mi", "muy", "ni", "no", "nos", "o", "otra", "otro", "para", "pero",
	"por", "porque", "que", "se", "ser", "si", "sin", "sobre", "son", "su",
	"sus", "también", "te", "tiene", "todo", "un", "una", "uno", "y", "ya",
)

var frenchStopwords = setOf(
	"à", "au", "aux", "avec", "ce", "ces", "cette", "dans", "de", "des",
	"du", "elle", "en", "est", "et", "eux", "il", "ils", "je", "la", "le",
	"les", "leur", "lui", "mais", "me", "même", "ne", "nous", "on", "ou",
	"où", "par", "pas", "plus", "pour", "qu", "que", "qui", "sa", "se",
	"ses", "son", "sont", "sur", "un", "une", "vous", "y",
)

var germanStopwords = setOf(
	"aber", "als", "am", "an", "auch", "auf", "aus", "bei", "bis", "das",
	"dass", "dem", "den", "der", "des", "die", "durch", "ein", "eine",
	"einem", "einen", "einer", "eines", "er", "es", "für", "hat", "im",
	"in", "ist", "mit", "nach", "nicht", "noch", "nur", "oder", "sich",
	"sie", "sind", "so", "über", "um", "und", "von", "vor", "war", "wie",
	"wird", "zu", "zum", "zur",
)

var italianStopwords = setOf(
	"a", "al", "alla", "che", "chi", "ci", "come", "con", "da", "dal",
	"del", "della", "di", "e", "è", "gli", "ha", "i", "il", "in", "la",
	"le", "lo", "ma", "né", "non", "o", "per", "più", "quella", "quello",
	"questa", "questo", "se", "si", "sono", "su", "un", "una", "uno",
)

var portugueseStopwords = setOf(
	"a", "ao", "aos", "as", "com", "como", "da", "das", "de", "do", "dos",
	"e", "é", "ela", "ele", "em", "entre", "essa", "esse", "esta", "este",
	"eu", "foi", "há", "isso", "mais", "mas", "na", "não", "nas", "no",
	"nos", "o", "os", "ou", "para", "pela", "pelo", "por", "que", "se",
	"sem", "seu", "sua", "também", "um", "uma", "você",
)

var hindiStopwords = setOf(
	"अगर", "और", "का", "कि", "की", "के", "को", "कोई", "गया", "जब", "जो",
	"तक", "तो", "था", "थी", "थे", "नहीं", "ने", "पर", "फिर", "बहुत", "भी",
	"मैं", "मे", "में", "यह", "या", "लिए", "वह", "से", "ही", "हुआ", "है",
	"हैं", "हो",
)

var stopwordsByLanguage = map[string]map[string]struct{}{
	"en": englishStopwords,
	"es": spanishStopwords,
	"fr": frenchStopwords,
	"de": germanStopwords,
	"it": italianStopwords,
	"pt": portugueseStopwords,
	"hi": hindiStopwords,
}

// StopwordsFor returns the stop-word set for a language code, defaulting to
// English for unsupported or unknown languages.
func StopwordsFor(lang string) map[string]struct{} {
	if set, ok := stopwordsByLanguage[lang]; ok {
		return set
	}
	return englishStopwords
}

// IsStopword checks one token against a language's stop-word set.
func IsStopword(word, lang string) bool {
	_, ok := StopwordsFor(lang)[word]
	return ok
}

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
