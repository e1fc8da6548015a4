package insights

import (
	"strings"
	"text/template"
)

const noIdentifiersRule = "Do not include any database-related terms, IDs, or unnecessary details."

var (
	historyTmpl = template.Must(template.New("history").Parse(`You are assisting {{.Name}} with their medical history.
` + noIdentifiersRule + `

Patient: {{.Name}}

Medical History:
{{range .Records}}- Date: {{.Date}}; Diagnosis: {{.Diagnosis}}; Doctor: {{.Doctor}}; Treatment: {{.Treatment}}; Prescription: {{.Prescription}}; Notes: {{.Notes}}
{{end}}
Answer the following question in a natural and professional manner:
"{{.Question}}"
`))

	vaccinationTmpl = template.Must(template.New("vaccination").Parse(`You are assisting with the vaccination history of {{.Name}}.
` + noIdentifiersRule + `

The following is the student's vaccination record history:
{{range .Records}}- Vaccine: {{.Vaccine}}; Dose: {{.Dose}}; Date administered: {{.Date}}; Administered by: {{.AdministeredBy}}; Facility: {{.Facility}}; Next due: {{.NextDue}}; Status: {{.Status}}; Recorded by: {{.RecordedBy}}; Notes: {{.Notes}}
{{end}}
Based on this data, answer the following question:
"{{.Question}}"
`))

	doctorTmpl = template.Must(template.New("doctor").Parse(`You are assisting Dr. {{.Name}} with patient records.
` + noIdentifiersRule + `

Available Appointment Slots:
{{range .FreeSlots}}- {{.}}
{{else}}- None
{{end}}
Your Upcoming Appointments:
{{range .Appointments}}- Patient: {{.Patient}}; DateTime: {{.DateTime}}; Status: {{.Status}}
{{else}}- None
{{end}}
Your Past Treatments:
{{range .Treatments}}- Patient: {{.Patient}}; Diagnosis: {{.Diagnosis}}; Treatment: {{.Treatment}}; Prescription: {{.Prescription}}; DateTime: {{.DateTime}}
{{else}}- None
{{end}}
Answer the following question:
"{{.Question}}"
`))

	diseaseTmpl = template.Must(template.New("disease").Parse(`A patient is experiencing the following symptoms: {{.Symptoms}}.
Based on these symptoms, predict the most likely disease or condition.
Provide a detailed explanation along with possible treatments.
Do not include any technical terms, IDs, or unnecessary database details.
`))
)

// ComposeHistory arma el prompt de /ask_question.
func ComposeHistory(name string, recs []HistoryEntry, question string) (string, error) {
	q, err := requireQuestion(question)
	if err != nil {
		return "", err
	}
	return render(historyTmpl, struct {
		Name     string
		Records  []HistoryEntry
		Question string
	}{name, recs, q})
}

// ComposeVaccinations arma el prompt de /vaccinationrelated.
func ComposeVaccinations(name string, recs []VaccinationEntry, question string) (string, error) {
	q, err := requireQuestion(question)
	if err != nil {
		return "", err
	}
	return render(vaccinationTmpl, struct {
		Name     string
		Records  []VaccinationEntry
		Question string
	}{name, recs, q})
}

// DoctorContext es todo lo que ve el prompt de /doctor_insights.
type DoctorContext struct {
	Name         string
	FreeSlots    []string
	Appointments []AppointmentEntry
	Treatments   []TreatmentEntry
}

func ComposeDoctorInsights(dc DoctorContext, question string) (string, error) {
	q, err := requireQuestion(question)
	if err != nil {
		return "", err
	}
	return render(doctorTmpl, struct {
		DoctorContext
		Question string
	}{dc, q})
}

// ComposeDiseasePrediction ignora síntomas en blanco; si no queda ninguno => ErrMissingSymptoms.
func ComposeDiseasePrediction(symptoms []string) (string, error) {
	clean := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	if len(clean) == 0 {
		return "", ErrMissingSymptoms
	}
	return render(diseaseTmpl, struct{ Symptoms string }{strings.Join(clean, ", ")})
}

// requireQuestion valida que haya pregunta; el texto se embebe tal cual llegó.
func requireQuestion(q string) (string, error) {
	if strings.TrimSpace(q) == "" {
		return "", ErrMissingQuestion
	}
	return q, nil
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
