package features

// EncoderKind says how a questionnaire answer becomes a model input
type EncoderKind string

const (
	// Categorical answers map to the index of their trained class
	Categorical EncoderKind = "categorical"
	// Numeric answers pass through as floats
	Numeric EncoderKind = "numeric"
)

// FeatureSpec describes one questionnaire field. For categorical fields
// the Examples list doubles as the trained class order, so its ordering
// is as load-bearing as the catalog ordering itself.
type FeatureSpec struct {
	Field         string      `json:"field"`
	Question      string      `json:"question"`
	QuestionHindi string      `json:"question_hi"`
	Description   string      `json:"description"`
	Examples      []string    `json:"examples"`
	Encoder       EncoderKind `json:"encoder"`
}

// catalog is the canonical feature catalog. The slice order defines the
// feature vector layout the models were trained against; never reorder.
var catalog = []FeatureSpec{
	{
		Field:         "age",
		Question:      "What is your age?",
		QuestionHindi: "आपकी आयु क्या है?",
		Description:   "Age in completed years",
		Examples:      []string{"25", "40", "60"},
		Encoder:       Numeric,
	},
	{
		Field:         "gender",
		Question:      "What is your gender?",
		QuestionHindi: "आपका लिंग क्या है?",
		Description:   "Self-identified gender",
		Examples:      []string{"Male", "Female", "Other"},
		Encoder:       Categorical,
	},
	{
		Field:         "body_frame",
		Question:      "How would you describe your body frame?",
		QuestionHindi: "आप अपने शरीर की बनावट का वर्णन कैसे करेंगे?",
		Description:   "Natural build and bone structure",
		Examples:      []string{"Thin and light", "Medium and muscular", "Broad and sturdy"},
		Encoder:       Categorical,
	},
	{
		Field:         "skin_type",
		Question:      "What is your skin usually like?",
		QuestionHindi: "आपकी त्वचा आमतौर पर कैसी रहती है?",
		Description:   "Predominant skin condition",
		Examples:      []string{"Dry and rough", "Warm and sensitive", "Smooth and oily"},
		Encoder:       Categorical,
	},
	{
		Field:         "hair_type",
		Question:      "What is your hair like?",
		QuestionHindi: "आपके बाल कैसे हैं?",
		Description:   "Natural hair texture",
		Examples:      []string{"Dry and frizzy", "Fine and straight", "Thick and wavy"},
		Encoder:       Categorical,
	},
	{
		Field:         "appetite",
		Question:      "How is your appetite?",
		QuestionHindi: "आपकी भूख कैसी है?",
		Description:   "Typical hunger pattern",
		Examples:      []string{"Irregular", "Strong and sharp", "Steady but slow"},
		Encoder:       Categorical,
	},
	{
		Field:         "sleep_pattern",
		Question:      "How do you usually sleep?",
		QuestionHindi: "आप आमतौर पर कैसे सोते हैं?",
		Description:   "Typical sleep depth and continuity",
		Examples:      []string{"Light and interrupted", "Moderate", "Deep and long"},
		Encoder:       Categorical,
	},
	{
		Field:         "energy_pattern",
		Question:      "How would you describe your energy through the day?",
		QuestionHindi: "दिन भर आपकी ऊर्जा कैसी रहती है?",
		Description:   "Characteristic energy rhythm",
		Examples:      []string{"Comes in bursts", "Intense and driven", "Steady and sustained"},
		Encoder:       Categorical,
	},
	{
		Field:         "stress_response",
		Question:      "How do you usually react under stress?",
		QuestionHindi: "तनाव में आप आमतौर पर कैसे प्रतिक्रिया करते हैं?",
		Description:   "Dominant stress reaction",
		Examples:      []string{"Anxious and restless", "Irritable and impatient", "Calm and withdrawn"},
		Encoder:       Categorical,
	},
	{
		Field:         "digestion",
		Question:      "How is your digestion?",
		QuestionHindi: "आपका पाचन कैसा है?",
		Description:   "Typical digestive tendency",
		Examples:      []string{"Variable and gassy", "Fast and acidic", "Slow and heavy"},
		Encoder:       Categorical,
	},
	{
		Field:         "weather_preference",
		Question:      "Which weather do you feel best in?",
		QuestionHindi: "आप किस मौसम में सबसे अच्छा महसूस करते हैं?",
		Description:   "Preferred climate",
		Examples:      []string{"Warm and humid", "Cool and fresh", "Warm and dry"},
		Encoder:       Categorical,
	},
	{
		Field:         "smoking",
		Question:      "Do you smoke?",
		QuestionHindi: "क्या आप धूम्रपान करते हैं?",
		Description:   "Tobacco smoking status",
		Examples:      []string{"Never", "Former", "Current"},
		Encoder:       Categorical,
	},
	{
		Field:         "alcohol_use",
		Question:      "How often do you drink alcohol?",
		QuestionHindi: "आप कितनी बार शराब पीते हैं?",
		Description:   "Alcohol consumption frequency",
		Examples:      []string{"Never", "Occasionally", "Regularly"},
		Encoder:       Categorical,
	},
	{
		Field:         "family_history",
		Question:      "Is there a history of cancer in your immediate family?",
		QuestionHindi: "क्या आपके निकट परिवार में कैंसर का इतिहास है?",
		Description:   "First-degree relative diagnosed with cancer",
		Examples:      []string{"No", "Yes"},
		Encoder:       Categorical,
	},
	{
		Field:         "physical_activity",
		Question:      "How physically active are you?",
		QuestionHindi: "आप शारीरिक रूप से कितने सक्रिय हैं?",
		Description:   "Weekly exercise level",
		Examples:      []string{"Low", "Moderate", "High"},
		Encoder:       Categorical,
	},
	{
		Field:         "bmi",
		Question:      "What is your body mass index (BMI)?",
		QuestionHindi: "आपका बॉडी मास इंडेक्स (BMI) क्या है?",
		Description:   "Weight in kg divided by height in metres squared",
		Examples:      []string{"18.5", "24.0", "30.2"},
		Encoder:       Numeric,
	},
}

var catalogByField = func() map[string]FeatureSpec {
	m := make(map[string]FeatureSpec, len(catalog))
	for _, spec := range catalog {
		m[spec.Field] = spec
	}
	return m
}()

// FeatureNames returns the canonical field ordering. The returned slice
// is a copy; callers may not mutate the layout the models depend on.
func FeatureNames() []string {
	names := make([]string, len(catalog))
	for i, spec := range catalog {
		names[i] = spec.Field
	}
	return names
}

// Count returns the number of features in the canonical layout
func Count() int {
	return len(catalog)
}

// Metadata returns the spec for a field. Unknown fields return a
// zero-value spec so encoding never hard-fails on a metadata gap.
func Metadata(field string) FeatureSpec {
	if spec, ok := catalogByField[field]; ok {
		return spec
	}
	return FeatureSpec{Field: field}
}

// All returns the full catalog in canonical order
func All() []FeatureSpec {
	out := make([]FeatureSpec, len(catalog))
	copy(out, catalog)
	return out
}

// LocalizedQuestion returns the question text for a language tag,
// falling back to English when no variant exists.
func LocalizedQuestion(spec FeatureSpec, lang string) string {
	if lang == "hi" && spec.QuestionHindi != "" {
		return spec.QuestionHindi
	}
	return spec.Question
}
