package model

// PushKind discriminates messages delivered by the external push channel.
type PushKind string

const (
	PushAutofill PushKind = "autofill_patch"
	PushStatus   PushKind = "status_update"
)

// AutofillPatch carries externally suggested values for the common fields.
// An empty string means the field is absent from the patch and the current
// draft value is kept; a non-empty value overwrites whatever is in the
// field (last-applied-wins).
type AutofillPatch struct {
	Name       string `json:"name,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Technology string `json:"technology,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Expert     string `json:"expert,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p AutofillPatch) Empty() bool {
	return p == AutofillPatch{}
}

// StatusUpdate is an asynchronous status change matched against persisted
// records by their recomputed subject.
type StatusUpdate struct {
	Subject string `json:"subject"`
	Status  string `json:"status"`
}

// PushMessage is the envelope flowing through the push-channel queue.
// Exactly one payload is set, selected by Kind.
type PushMessage struct {
	Kind     PushKind       `json:"kind"`
	Autofill *AutofillPatch `json:"autofill,omitempty"`
	Status   *StatusUpdate  `json:"status,omitempty"`
}
