package core

import "time"

const (
	AppName       = "BrainChat"
	AppUserAgent  = "BrainChat/0.1"
	AppVersion    = "0.1.0"
	RepositoryURL = "https://github.com/sandevgo/brainchat"
)

// Record is what the client remembers about a brain reply so feedback can
// be attributed to the exchange that produced it.
type Record struct {
	Input     string
	Output    string
	Timestamp string
}

type Interaction struct {
	Input          string  `json:"input"`
	Response       string  `json:"response"`
	Timestamp      string  `json:"timestamp"`
	ProcessingTime float64 `json:"processing_time,omitempty"`
}

type Feedback struct {
	MessageID  string `json:"message_id"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	IsPositive bool   `json:"is_positive"`
}

// MemoryItem is a stored fact or experience returned by the brain.
type MemoryItem struct {
	Content    string  `json:"content"`
	Importance float64 `json:"importance"`
	CreatedAt  string  `json:"created_at"`
}

// CreatedTime parses CreatedAt. The brain emits ISO timestamps, often
// without a zone offset; those are read as local time.
func (m MemoryItem) CreatedTime() (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, m.CreatedAt); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, m.CreatedAt, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RenderedMemory is a MemoryItem prepared for display.
type RenderedMemory struct {
	Content    string
	IsJSON     bool
	Importance string
	CreatedAt  string
}

type NeuralStats struct {
	ExperienceCounter int     `json:"experience_counter"`
	LearningRate      float64 `json:"learning_rate"`
	CuriosityFactor   float64 `json:"curiosity_factor"`
}

type MemoryStats struct {
	STMSize       int `json:"stm_size"`
	LTMSize       int `json:"ltm_size"`
	TotalMemories int `json:"total_memories"`
}

type LearningStats struct {
	ExplorationRate  float64 `json:"exploration_rate"`
	TotalExperiences int     `json:"total_experiences"`
	ConceptsCount    int     `json:"concepts_count"`
}

type ExplorerStats struct {
	URLsVisited        int `json:"urls_visited"`
	URLsInQueue        int `json:"urls_in_queue"`
	ExplorationHistory int `json:"exploration_history"`
}

type Stats struct {
	NeuralNetwork NeuralStats    `json:"neural_network"`
	Memory        MemoryStats    `json:"memory"`
	Learning      LearningStats  `json:"learning"`
	WebExplorer   *ExplorerStats `json:"web_explorer,omitempty"`
}
