package phonetics

// Phonetic symbols in use: a æ ɑ ɒ ɔ o ʊ u ʌ ə ɛ e ɪ i ɜ (vowels), b d f g h
// j k l m n ŋ p r s ʃ t θ ð v w z ʒ ʧ ʤ (consonants).

// consonants whose doubled occurrences collapse to one
var consonants = []string{
	"l", "d", "z", "b", "t", "k", "n", "s", "w", "v", "ð", "ʒ",
	"ʧ", "θ", "h", "g", "ʤ", "ŋ", "p", "m", "ʃ", "f", "j", "r",
}

// clusterContractions are applied in order after consonant collapsing
var clusterContractions = []struct{ from, to string }{
	{"ɛɛ", "i"},
	{"ɪɪ", "ɪ"},
	{"iɪ", "i"},
	{"ŋg", "ŋ"},
}

// letterPronunciations is the fallback for single letters
var letterPronunciations = map[rune]string{
	'a': "æ", 'b': "b", 'c': "k", 'd': "d", 'e': "ɛ", 'f': "f", 'g': "g",
	'h': "h", 'i': "ɪ", 'j': "ʤ", 'k': "k", 'l': "l", 'm': "m", 'n': "n",
	'o': "o", 'p': "p", 'q': "k", 'r': "r", 's': "s", 't': "t", 'u': "u",
	'v': "v", 'w': "w", 'x': "ks", 'y': "j", 'z': "z",
}

// wordPartPronunciations covers letter clusters that recur in English and
// European name spellings
var wordPartPronunciations = map[string]string{
	// digraphs
	"th":  "θ",
	"sh":  "ʃ",
	"ch":  "ʧ",
	"ph":  "f",
	"gh":  "g",
	"ck":  "k",
	"qu":  "kw",
	"wh":  "w",
	"wr":  "r",
	"kn":  "n",
	"ng":  "ŋ",
	"nk":  "ŋk",
	"dg":  "ʤ",
	"zh":  "ʒ",
	"sch": "ʃ",
	"tch": "ʧ",
	"dge": "ʤ",
	"cz":  "ʧ",
	"sz":  "ʃ",

	// vowel teams
	"ee":   "i",
	"ea":   "i",
	"ie":   "i",
	"ei":   "eɪ",
	"ey":   "i",
	"ai":   "eɪ",
	"ay":   "eɪ",
	"oa":   "o",
	"oe":   "o",
	"oo":   "u",
	"ou":   "aʊ",
	"ow":   "aʊ",
	"oi":   "ɔɪ",
	"oy":   "ɔɪ",
	"au":   "ɔ",
	"aw":   "ɔ",
	"ue":   "u",
	"ew":   "ju",
	"igh":  "aɪ",
	"eigh": "eɪ",
	"ough": "o",
	"augh": "ɔ",

	// soft consonants
	"ce": "sɛ",
	"ci": "sɪ",
	"cy": "si",
	"ge": "ʤɛ",
	"gi": "ʤɪ",

	// common endings and name parts
	"tion":   "ʃən",
	"sion":   "ʒən",
	"son":    "sən",
	"sen":    "sən",
	"ton":    "tən",
	"man":    "mən",
	"mann":   "mən",
	"ley":    "li",
	"ly":     "li",
	"er":     "ər",
	"ar":     "ɑr",
	"or":     "ɔr",
	"ur":     "ɜr",
	"ir":     "ɜr",
	"le":     "əl",
	"el":     "ɛl",
	"ell":    "ɛl",
	"all":    "ɔl",
	"ill":    "ɪl",
	"ford":   "fərd",
	"field":  "fild",
	"berg":   "bɜrg",
	"burg":   "bɜrg",
	"stein":  "staɪn",
	"witz":   "wɪts",
	"ski":    "ski",
	"sky":    "ski",
	"mac":    "mək",
	"mc":     "mək",
	"vander": "vændər",
	"vanden": "vændən",
	"vande":  "vændə",
	"ine":    "in",
	"ette":   "ɛt",
	"anne":   "æn",
	"beth":   "bɛθ",
	"john":   "ʤɑn",
	"jon":    "ʤɑn",
	"will":   "wɪl",
	"rich":   "rɪʧ",
	"rob":    "rɑb",
}

// namePronunciations holds whole-word pronunciations of common given names
// and surnames
var namePronunciations = map[string]string{
	"aaron":       "ɛrən",
	"abigail":     "æbɪgeɪl",
	"abraham":     "eɪbrəhæm",
	"adam":        "ædəm",
	"albert":      "ælbərt",
	"alexander":   "ælɪgzændər",
	"alice":       "ælɪs",
	"allen":       "ælən",
	"amelia":      "əmiliə",
	"andrew":      "ændru",
	"ann":         "æn",
	"anna":        "ænə",
	"anne":        "æn",
	"anthony":     "ænθəni",
	"arthur":      "ɑrθər",
	"baker":       "beɪkər",
	"barbara":     "bɑrbərə",
	"benjamin":    "bɛnʤəmɪn",
	"brown":       "braʊn",
	"campbell":    "kæmbəl",
	"carl":        "kɑrl",
	"caroline":    "kærəlaɪn",
	"catherine":   "kæθrɪn",
	"charles":     "ʧɑrlz",
	"charlotte":   "ʃɑrlət",
	"christopher": "krɪstəfər",
	"clark":       "klɑrk",
	"daniel":      "dænjəl",
	"david":       "deɪvɪd",
	"davis":       "deɪvɪs",
	"dorothy":     "dɔrəθi",
	"edward":      "ɛdwərd",
	"elizabeth":   "ɪlɪzəbəθ",
	"emily":       "ɛməli",
	"emma":        "ɛmə",
	"evans":       "ɛvənz",
	"francis":     "frænsɪs",
	"frederick":   "frɛdrɪk",
	"george":      "ʤɔrʤ",
	"green":       "grin",
	"hall":        "hɔl",
	"hannah":      "hænə",
	"harris":      "hærɪs",
	"harry":       "hæri",
	"helen":       "hɛlən",
	"henry":       "hɛnri",
	"hughes":      "hjuz",
	"isaac":       "aɪzək",
	"jackson":     "ʤæksən",
	"jacob":       "ʤeɪkəb",
	"james":       "ʤeɪmz",
	"jane":        "ʤeɪn",
	"jean":        "ʤin",
	"johnson":     "ʤɑnsən",
	"jones":       "ʤonz",
	"joseph":      "ʤozəf",
	"katherine":   "kæθrɪn",
	"king":        "kɪŋ",
	"lewis":       "luɪs",
	"louis":       "luɪs",
	"margaret":    "mɑrgrət",
	"martha":      "mɑrθə",
	"martin":      "mɑrtən",
	"mary":        "mɛri",
	"matthew":     "mæθju",
	"michael":     "maɪkəl",
	"miller":      "mɪlər",
	"moore":       "mur",
	"nancy":       "nænsi",
	"nicholas":    "nɪkələs",
	"patrick":     "pætrɪk",
	"peter":       "pitər",
	"philip":      "fɪlɪp",
	"phillips":    "fɪlɪps",
	"rachel":      "reɪʧəl",
	"richard":     "rɪʧərd",
	"robert":      "rɑbərt",
	"roberts":     "rɑbərts",
	"robinson":    "rɑbɪnsən",
	"samuel":      "sæmjuəl",
	"sarah":       "sɛrə",
	"smith":       "smɪθ",
	"sophia":      "sofiə",
	"stephen":     "stivən",
	"steven":      "stivən",
	"susan":       "suzən",
	"taylor":      "teɪlər",
	"thomas":      "tɑməs",
	"thompson":    "tɑmsən",
	"turner":      "tɜrnər",
	"walker":      "wɔkər",
	"white":       "waɪt",
	"william":     "wɪljəm",
	"williams":    "wɪljəmz",
	"wilson":      "wɪlsən",
	"wright":      "raɪt",
	"young":       "jʌŋ",
}
