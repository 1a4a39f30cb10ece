package domain

import "regexp"

// TemplateKind names one of the structured request shapes technicians are
// required to use.
type TemplateKind string

const (
	TemplateGeneralRequest   TemplateKind = "general_request"
	TemplateReschedule       TemplateKind = "reschedule"
	TemplateIncorrectData    TemplateKind = "incorrect_data"
	TemplateNoContactReached TemplateKind = "no_contact_reached"
	TemplateServiceDeclined  TemplateKind = "service_declined"
)

// Signal is a single required field of a template.
type Signal struct {
	Name  string
	match func(text string, hasAttachment bool) bool
}

func (s Signal) Present(text string, hasAttachment bool) bool {
	return s.match(text, hasAttachment)
}

func textSignal(name, pattern string) Signal {
	re := regexp.MustCompile(pattern)
	return Signal{
		Name:  name,
		match: func(text string, _ bool) bool { return re.MatchString(text) },
	}
}

var (
	SignalAccount          = textSignal("account", `(?i)\bcta(?:\b|\d)`)
	SignalWorkOrder        = textSignal("work_order", `(?i)\b(?:ot|lls)(?:\b|\d)`)
	SignalRequestWord      = textSignal("solicitud", `(?i)solicitud`)
	SignalCurrentDate      = textSignal("current_date", `(?i)fecha.*actual`)
	SignalRescheduleDate   = textSignal("reschedule_date", `(?i)fecha.*reprogram`)
	SignalScheduledDate    = textSignal("scheduled_date", `(?i)fecha.*agenda`)
	SignalConfirmingPerson = textSignal("confirming_person", `(?i)persona.*confirma`)
	SignalMobileNumber     = textSignal("mobile_number", `\b3\d{9}\b`)
	SignalReason           = textSignal("reason", `(?i)motivo`)
	SignalObservation      = textSignal("observation", `(?i)observaci[oó]n`)
	SignalTechnician       = textSignal("technician", `(?i)t[eé]cnico`)
	SignalFacade           = textSignal("facade", `(?i)fachada`)
	SignalAttachment       = Signal{
		Name:  "attachment",
		match: func(_ string, hasAttachment bool) bool { return hasAttachment },
	}
)

// Template is a conjunction of signals; a message satisfies it when every
// signal is present.
type Template struct {
	Kind    TemplateKind
	Signals []Signal
}

func (t Template) Matches(text string, hasAttachment bool) bool {
	for _, signal := range t.Signals {
		if !signal.Present(text, hasAttachment) {
			return false
		}
	}
	return true
}

// Missing returns the names of the signals the text does not satisfy.
func (t Template) Missing(text string, hasAttachment bool) []string {
	var missing []string
	for _, signal := range t.Signals {
		if !signal.Present(text, hasAttachment) {
			missing = append(missing, signal.Name)
		}
	}
	return missing
}

var templates = []Template{
	{
		Kind: TemplateReschedule,
		Signals: []Signal{
			SignalAccount, SignalWorkOrder, SignalCurrentDate, SignalRescheduleDate,
			SignalConfirmingPerson, SignalMobileNumber, SignalReason,
		},
	},
	{
		Kind: TemplateNoContactReached,
		Signals: []Signal{
			SignalAccount, SignalWorkOrder, SignalScheduledDate, SignalTechnician,
			SignalFacade, SignalAttachment,
		},
	},
	// Same field set as TemplateReschedule; the two shapes are not told
	// apart by their contents.
	{
		Kind: TemplateServiceDeclined,
		Signals: []Signal{
			SignalAccount, SignalWorkOrder, SignalCurrentDate, SignalRescheduleDate,
			SignalConfirmingPerson, SignalMobileNumber, SignalReason,
		},
	},
	{
		Kind: TemplateIncorrectData,
		Signals: []Signal{
			SignalAccount, SignalWorkOrder, SignalScheduledDate, SignalConfirmingPerson,
			SignalMobileNumber, SignalObservation,
		},
	},
	{
		Kind:    TemplateGeneralRequest,
		Signals: []Signal{SignalAccount, SignalWorkOrder, SignalRequestWord},
	},
}

// Templates returns the recognised templates in evaluation order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateFor returns the template of the given kind.
func TemplateFor(kind TemplateKind) (Template, bool) {
	for _, t := range templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// Classify reports the first template satisfied by normalized text.
func Classify(normalized string, hasAttachment bool) (TemplateKind, bool) {
	for _, t := range templates {
		if t.Matches(normalized, hasAttachment) {
			return t.Kind, true
		}
	}
	return "", false
}

// MatchesTemplate is the pass/fail gate used for routing.
func MatchesTemplate(normalized string, hasAttachment bool) bool {
	_, ok := Classify(normalized, hasAttachment)
	return ok
}

// ClosestTemplate returns the template with the fewest missing signals
// together with those signals. Ties keep evaluation order.
func ClosestTemplate(normalized string, hasAttachment bool) (Template, []string) {
	var (
		best        Template
		bestMissing []string
	)
	for i, t := range templates {
		missing := t.Missing(normalized, hasAttachment)
		if i == 0 || len(missing) < len(bestMissing) {
			best, bestMissing = t, missing
		}
	}
	return best, bestMissing
}
