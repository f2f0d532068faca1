package api

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/prakriti-health/prakriti-api/pkg/features"
)

// supportedLanguages lists the questionnaire translations, English first
// so it wins as the fallback
var supportedLanguages = []language.Tag{
	language.English,
	language.Hindi,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

type questionItem struct {
	Field       string   `json:"field"`
	Question    string   `json:"question"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Encoder     string   `json:"encoder"`
}

// handleQuestions returns the questionnaire in the caller's language.
// Resolution order: X-Language header, Accept-Language, the stored
// profile preference when a valid token is supplied, then English.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	lang := s.resolveLanguage(r)

	items := make([]questionItem, 0, features.Count())
	for _, spec := range features.All() {
		items = append(items, questionItem{
			Field:       spec.Field,
			Question:    features.LocalizedQuestion(spec, lang),
			Description: spec.Description,
			Examples:    spec.Examples,
			Encoder:     string(spec.Encoder),
		})
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"language":  lang,
		"questions": items,
	})
}

func (s *Server) resolveLanguage(r *http.Request) string {
	if explicit := r.Header.Get("X-Language"); explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			return baseLanguage(tag)
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := languageMatcher.Match(tags...)
			if conf > language.No {
				return baseLanguage(supportedLanguages[idx])
			}
		}
	}

	if pref := s.profileLanguage(r); pref != "" {
		return pref
	}
	return "en"
}

// profileLanguage reads the stored language preference when the request
// carries a valid token. The endpoint stays public, so a missing or bad
// token is not an error here.
func (s *Server) profileLanguage(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	claims, err := s.tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return ""
	}
	profile, err := s.store.GetProfile(claims.UserID)
	if err != nil {
		return ""
	}
	if lang, ok := profile.Preferences["language"].(string); ok {
		return lang
	}
	return ""
}

func baseLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
