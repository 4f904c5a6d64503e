package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
)

var (
	// ErrInvalidDocument is returned when a state document cannot be decoded or fails
	// schema validation.
	ErrInvalidDocument = errors.New("invalid state document")
	// ErrInvalidInput is returned when caller-supplied fields fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Section names the top-level keys of the state document.
type Section string

const (
	SectionSmokeLogs    Section = "smokeLogs"
	SectionCravingLogs  Section = "cravingLogs"
	SectionGoals        Section = "goals"
	SectionAchievements Section = "achievements"
	SectionQuotes       Section = "quotes"
	SectionSettings     Section = "settings"
	SectionDailyStats   Section = "dailyStats"
)

// Sections lists every document section in serialization order.
var Sections = []Section{
	SectionSmokeLogs,
	SectionCravingLogs,
	SectionGoals,
	SectionAchievements,
	SectionQuotes,
	SectionSettings,
	SectionDailyStats,
}

// Conflict is a single schema violation.
type Conflict struct {
	Location    string // e.g. "cravingLogs[3].intensity"
	Description string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s: %s\n", c.Location, c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(location, description string) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Location: location, Description: description})
}

// DocumentError carries the conflicts that made a document invalid.
type DocumentError struct {
	Result ValidationResult
}

func (e *DocumentError) Error() string {
	parts := make([]string, 0, len(e.Result.Conflicts))
	for _, c := range e.Result.Conflicts {
		parts = append(parts, c.Location+": "+c.Description)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidDocument, strings.Join(parts, "; "))
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}

// Partial is a decoded, validated document together with the sections that were
// actually present in the source.
type Partial struct {
	Version  int
	Document models.Document
	Present  map[Section]bool
}

// MergeInto replaces each present section of base with the decoded one. Absent
// sections keep base's value.
func (p Partial) MergeInto(base models.Document) models.Document {
	out := base.Clone()
	out.Version = constants.SchemaVersion
	d := p.Document.Clone()
	for _, s := range Sections {
		if !p.Present[s] {
			continue
		}
		switch s {
		case SectionSmokeLogs:
			out.SmokeLogs = d.SmokeLogs
		case SectionCravingLogs:
			out.CravingLogs = d.CravingLogs
		case SectionGoals:
			out.Goals = d.Goals
		case SectionAchievements:
			out.Achievements = d.Achievements
		case SectionQuotes:
			out.Quotes = d.Quotes
		case SectionSettings:
			out.Settings = d.Settings
		case SectionDailyStats:
			out.DailyStats = d.DailyStats
		}
	}
	return out
}

// Validator checks state documents and ledger inputs.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English error messages keyed by JSON field names.
func New() (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: validate, trans: trans}, nil
}

// MustNew is New for package-level initialization; the translations are static so it
// only panics on a programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Struct validates a single input value, returning an error wrapping ErrInvalidInput.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(v.trans))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// Decode parses and validates a (possibly partial) state document. Missing sections
// are reported absent in the result, missing settings fields take their defaults, and
// any structural or schema violation yields a *DocumentError.
func (v *Validator) Decode(blob []byte) (Partial, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Partial{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		return Partial{}, fmt.Errorf("%w: document must be a JSON object", ErrInvalidDocument)
	}

	p := Partial{
		Version:  constants.SchemaVersion,
		Document: models.NewDocument(),
		Present:  make(map[Section]bool),
	}
	var result ValidationResult

	if vraw, ok := raw["version"]; ok {
		if err := json.Unmarshal(vraw, &p.Version); err != nil {
			result.add("version", "must be an integer")
		} else if p.Version > constants.SchemaVersion {
			result.add("version", fmt.Sprintf("document version %d is newer than supported version %d", p.Version, constants.SchemaVersion))
		}
	}

	doc := &p.Document
	for _, s := range Sections {
		msg, ok := raw[string(s)]
		if !ok {
			continue
		}
		p.Present[s] = true

		var err error
		switch s {
		case SectionSmokeLogs:
			doc.SmokeLogs, err = decodeList[models.SmokeEvent](msg)
		case SectionCravingLogs:
			doc.CravingLogs, err = decodeList[models.CravingEvent](msg)
		case SectionGoals:
			doc.Goals, err = decodeList[models.Goal](msg)
		case SectionAchievements:
			doc.Achievements, err = decodeList[models.Achievement](msg)
		case SectionQuotes:
			doc.Quotes, err = decodeList[models.Quote](msg)
		case SectionSettings:
			settings := models.DefaultSettings()
			if string(msg) != "null" {
				err = json.Unmarshal(msg, &settings)
			}
			doc.Settings = settings
		case SectionDailyStats:
			doc.DailyStats, err = decodeList[models.DailyStat](msg)
		}
		if err != nil {
			result.add(string(s), fmt.Sprintf("malformed section: %v", err))
		}
	}

	if !result.HasConflicts() {
		v.checkDocument(doc, p.Present, &result)
	}
	if result.HasConflicts() {
		return Partial{}, &DocumentError{Result: result}
	}

	return p, nil
}

// ValidateDocument runs the schema checks over a complete in-memory document.
func (v *Validator) ValidateDocument(doc models.Document) ValidationResult {
	var result ValidationResult
	all := make(map[Section]bool, len(Sections))
	for _, s := range Sections {
		all[s] = true
	}
	v.checkDocument(&doc, all, &result)
	return result
}

func (v *Validator) checkDocument(doc *models.Document, present map[Section]bool, result *ValidationResult) {
	if present[SectionSmokeLogs] {
		ids := make(map[string]bool)
		for i, e := range doc.SmokeLogs {
			v.checkElement(SectionSmokeLogs, i, e, result)
			checkUnique(SectionSmokeLogs, i, "id", e.ID, ids, result)
		}
	}
	if present[SectionCravingLogs] {
		ids := make(map[string]bool)
		for i, e := range doc.CravingLogs {
			v.checkElement(SectionCravingLogs, i, e, result)
			checkUnique(SectionCravingLogs, i, "id", e.ID, ids, result)
		}
	}
	if present[SectionGoals] {
		ids := make(map[string]bool)
		for i, g := range doc.Goals {
			v.checkElement(SectionGoals, i, g, result)
			checkUnique(SectionGoals, i, "id", g.ID, ids, result)
		}
	}
	if present[SectionAchievements] {
		ids := make(map[string]bool)
		for i, a := range doc.Achievements {
			v.checkElement(SectionAchievements, i, a, result)
			checkUnique(SectionAchievements, i, "id", a.ID, ids, result)
		}
	}
	if present[SectionQuotes] {
		ids := make(map[string]bool)
		for i, q := range doc.Quotes {
			v.checkElement(SectionQuotes, i, q, result)
			checkUnique(SectionQuotes, i, "id", q.ID, ids, result)
		}
	}
	if present[SectionSettings] {
		v.checkValue(string(SectionSettings), doc.Settings, result)
	}
	if present[SectionDailyStats] {
		dates := make(map[string]bool)
		for i, st := range doc.DailyStats {
			v.checkElement(SectionDailyStats, i, st, result)
			checkUnique(SectionDailyStats, i, "date", st.Date, dates, result)
		}
	}
}

func (v *Validator) checkElement(s Section, i int, elem any, result *ValidationResult) {
	v.checkValue(fmt.Sprintf("%s[%d]", s, i), elem, result)
}

func (v *Validator) checkValue(prefix string, value any, result *ValidationResult) {
	err := v.validate.Struct(value)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.add(prefix, err.Error())
		return
	}
	for _, fe := range verrs {
		// Namespace is "<Type>.<field path>"; drop the type name
		field := fe.Namespace()
		if parts := strings.SplitN(field, ".", 2); len(parts) == 2 {
			field = parts[1]
		}
		result.add(prefix+"."+field, fe.Translate(v.trans))
	}
}

func checkUnique(s Section, i int, field, value string, seen map[string]bool, result *ValidationResult) {
	if value == "" {
		return
	}
	if seen[value] {
		result.add(fmt.Sprintf("%s[%d].%s", s, i, field), fmt.Sprintf("duplicate %s %q", field, value))
		return
	}
	seen[value] = true
}

func decodeList[T any](msg json.RawMessage) ([]T, error) {
	var out []T
	if err := json.Unmarshal(msg, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
