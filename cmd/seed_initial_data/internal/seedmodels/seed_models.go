package seedmodels

// SeedFile is the top-level document of a seed file. Questions and courses reference tags by name.
type SeedFile struct {
	Tags      []SeedTag      `json:"tags"`
	Questions []SeedQuestion `json:"questions"`
	Courses   []SeedCourse   `json:"courses"`
}

type SeedTag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        int    `json:"type"`
}

type SeedOption struct {
	Text   string `json:"text"`
	IsTrue bool   `json:"is_true"`
}

// SeedQuestion is stored as released unless Draft is set.
type SeedQuestion struct {
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Explanation string       `json:"explanation"`
	Draft       bool         `json:"draft"`
	Tags        []string     `json:"tags"`
	Options     []SeedOption `json:"options"`
}

type SeedCourse struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	QuestionsToAsk int      `json:"questions_to_ask"`
	Tags           []string `json:"tags"`
}
