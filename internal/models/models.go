package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList is a JSONB-backed ordered list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = StringList{}
		return nil
	}
	return errors.New("unsupported type for StringList")
}

type User struct {
	ID              string     `db:"id" json:"id"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	PriorityVirtues StringList `db:"priority_virtues" json:"priorityVirtues"`
	CustomVirtues   StringList `db:"custom_virtues" json:"customVirtues"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

const (
	EntryKindMoment     = "moment"
	EntryKindReflection = "reflection"
)

// Entry is a user-authored moment or reflection. Immutable after creation
// apart from the audio reference attached at creation time.
type Entry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Text      string    `db:"text" json:"text"`
	Kind      string    `db:"kind" json:"type"`
	AudioURL  *string   `db:"audio_url" json:"audioUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// WeeklyReflection is a system-generated summary of one user's trailing week.
// AudioURL starts null and is set at most once after synthesis succeeds.
type WeeklyReflection struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	SummaryText    string    `db:"summary_text" json:"summaryText"`
	ReflectionData string    `db:"reflection_data" json:"reflectionData"`
	GeneratedAt    time.Time `db:"generated_at" json:"generatedAt"`
	AudioURL       *string   `db:"audio_url" json:"audioUrl"`
}

type PeerFeedback struct {
	ID          string    `db:"id" json:"id"`
	RecipientID string    `db:"recipient_id" json:"recipientId"`
	GiverID     string    `db:"giver_id" json:"giverId"`
	GiverEmail  string    `db:"giver_email" json:"giverEmail"`
	Text        string    `db:"text" json:"text"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// IntegrationSetting is one provider's connection state, stored as JSONB.
type IntegrationSetting struct {
	Connected bool           `json:"connected"`
	Settings  map[string]any `json:"settings"`
}

func (s IntegrationSetting) Value() (driver.Value, error) {
	if s.Settings == nil {
		s.Settings = map[string]any{}
	}
	return json.Marshal(s)
}

func (s *IntegrationSetting) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = IntegrationSetting{Settings: map[string]any{}}
		return nil
	}
	return errors.New("unsupported type for IntegrationSetting")
}

// Integrations is a per-user document covering the fixed provider set.
// Updates replace the whole document, last writer wins.
type Integrations struct {
	UserID string             `db:"user_id" json:"-"`
	Email  IntegrationSetting `db:"email" json:"email"`
	Slack  IntegrationSetting `db:"slack" json:"slack"`
	Jira   IntegrationSetting `db:"jira" json:"jira"`
}

type Quote struct {
	ID               string `db:"id" json:"-"`
	Quote            string `db:"quote" json:"quote"`
	Author           string `db:"author" json:"author"`
	ReflectionPrompt string `db:"reflection_prompt" json:"reflectionPrompt"`
}

type Article struct {
	ID      string `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Summary string `db:"summary" json:"summary"`
	Link    string `db:"link" json:"link"`
}

type VirtueSuggestion struct {
	ID       string `db:"id" json:"-"`
	Virtue   string `db:"virtue" json:"virtue"`
	Practice string `db:"practice" json:"practice"`
}
