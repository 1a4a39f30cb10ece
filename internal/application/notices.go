package application

import (
	"fmt"
	"strings"
)

const (
	// DefaultDisplayName stands in when the contact directory has no name.
	DefaultDisplayName = "Técnico"

	RejectionNotice = "⚠️ Solicitud incompleta o no explícita.\nPor favor valida la plantilla y vuelve a enviar."
	ReminderNotice  = "⏰ Aún no se ha gestionado la solicitud.\n¿Me ayudas por favor?"

	forwardSuffix = "\n\n_me ayudas con esto porfavor_"
)

// ForwardText is the text posted into the destination conversation.
func ForwardText(original string) string {
	return original + forwardSuffix
}

// ConfirmationNotice tells the source conversation who the request was
// escalated for.
func ConfirmationNotice(displayName string) string {
	return fmt.Sprintf("✅ *RESPUESTA PARA @%s:*\n\nESCALADO ⚠️", strings.ToUpper(displayName))
}
