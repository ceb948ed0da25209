package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"skillswap/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// Fixture is the declarative demo data set.
type Fixture struct {
	Password string           `yaml:"password"`
	Skills   []SkillFixture   `yaml:"skills"`
	Users    []UserFixture    `yaml:"users"`
	Matches  []MatchFixture   `yaml:"matches"`
	Messages []MessageFixture `yaml:"messages"`
	Content  []ContentFixture `yaml:"content"`
}

type SkillFixture struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type UserFixture struct {
	Username string             `yaml:"username"`
	Bio      string             `yaml:"bio"`
	Avatar   string             `yaml:"avatar"`
	Skills   []UserSkillFixture `yaml:"skills"`
}

type UserSkillFixture struct {
	Skill       string             `yaml:"skill"`
	Type        models.SkillType   `yaml:"type"`
	Proficiency models.Proficiency `yaml:"proficiency"`
	Description string             `yaml:"description"`
	Progress    int                `yaml:"progress"`
	Partners    int                `yaml:"partners"`
	Teacher     string             `yaml:"teacher"`
}

type MatchFixture struct {
	Source string             `yaml:"source"`
	Target string             `yaml:"target"`
	Teach  string             `yaml:"teach"`
	Learn  string             `yaml:"learn"`
	Status models.MatchStatus `yaml:"status"`
}

type MessageFixture struct {
	From       string `yaml:"from"`
	To         string `yaml:"to"`
	Content    string `yaml:"content"`
	Read       bool   `yaml:"read"`
	MinutesAgo int    `yaml:"minutesAgo"`
}

type ContentFixture struct {
	Owner    string             `yaml:"owner"`
	Filename string             `yaml:"filename"`
	Type     models.ContentType `yaml:"type"`
	Path     string             `yaml:"path"`
	Size     int64              `yaml:"size"`
	Summary  string             `yaml:"summary"`
}

// DemoFixture parses the embedded demo data set.
func DemoFixture() (*Fixture, error) {
	return ParseFixture(demoYAML)
}

// ParseFixture decodes and checks a fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every reference in the fixture resolves.
func (f *Fixture) Validate() error {
	if f.Password == "" {
		return fmt.Errorf("fixture: password is required")
	}
	skills := make(map[string]bool, len(f.Skills))
	for _, s := range f.Skills {
		skills[s.Name] = true
	}
	users := make(map[string]bool, len(f.Users))
	records := make(map[string]models.SkillType)
	for _, u := range f.Users {
		if users[u.Username] {
			return fmt.Errorf("fixture: duplicate user %q", u.Username)
		}
		users[u.Username] = true
		for _, us := range u.Skills {
			if !skills[us.Skill] {
				return fmt.Errorf("fixture: user %q references unknown skill %q", u.Username, us.Skill)
			}
			if !us.Type.Valid() || !us.Proficiency.Valid() {
				return fmt.Errorf("fixture: user %q has an invalid record for %q", u.Username, us.Skill)
			}
			records[recordKey(u.Username, us.Skill)] = us.Type
		}
	}
	for i, m := range f.Matches {
		if !users[m.Source] || !users[m.Target] {
			return fmt.Errorf("fixture: match %d references an unknown user", i)
		}
		if records[m.Teach] != models.SkillTypeTeach {
			return fmt.Errorf("fixture: match %d teach %q is not a teach record", i, m.Teach)
		}
		if records[m.Learn] != models.SkillTypeLearn {
			return fmt.Errorf("fixture: match %d learn %q is not a learn record", i, m.Learn)
		}
		owner, _, _ := strings.Cut(m.Learn, "/")
		if owner != m.Source && owner != m.Target {
			return fmt.Errorf("fixture: match %d learn record belongs to neither party", i)
		}
		if !m.Status.Valid() {
			return fmt.Errorf("fixture: match %d has status %q", i, m.Status)
		}
	}
	for i, msg := range f.Messages {
		if !users[msg.From] || !users[msg.To] {
			return fmt.Errorf("fixture: message %d references an unknown user", i)
		}
	}
	for i, c := range f.Content {
		if !users[c.Owner] {
			return fmt.Errorf("fixture: content %d references an unknown user", i)
		}
	}
	return nil
}

func recordKey(username, skill string) string {
	return username + "/" + skill
}
