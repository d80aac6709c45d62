package notify

import "fmt"

// Message templates for the salon's WhatsApp/Telegram notifications.
// Texts are in Spanish, matching the audience of the product.

func BookingReceived(clientName, date, startTime, serviceName string) string {
	return fmt.Sprintf(
		"¡Hola %s! 💇‍♀️ Reservaste un turno en Roma Cabello:\n"+
			"📅 Fecha: %s\n"+
			"🕒 Hora: %s\n"+
			"✨ Servicio: %s\n\n"+
			"✅ *Por favor, respondé este mensaje con un 1 para CONFIRMAR tu asistencia* "+
			"o con un *2 para CANCELAR*.",
		clientName, date, startTime, serviceName,
	)
}

func BookingConfirmed(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"¡Hola %s! 💇‍♀️ Tu turno en Roma Cabello ha sido *CONFIRMADO*.\n"+
			"📅 Fecha: %s\n"+
			"🕒 Hora: %s\n"+
			"¡Te esperamos!",
		clientName, date, startTime,
	)
}

func BookingCancelled(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"Hola %s. Te informamos que tu turno para el día %s a las %s ha sido CANCELADO. "+
			"Si fue un error, por favor contactanos.",
		clientName, date, startTime,
	)
}

func BookingRescheduled(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"¡Hola %s! Tu turno ha sido REPROGRAMADO:\n"+
			"📅 Nueva fecha: %s\n"+
			"🕒 Nueva hora: %s\n"+
			"¡Te esperamos!",
		clientName, date, startTime,
	)
}

func ConfirmationRequest(clientName, shortDate, startTime, serviceName string) string {
	return fmt.Sprintf(
		"👋 Hola %s\n\n"+
			"Confirmación de tu turno en *Roma Cabello*:\n"+
			"📅 *%s*\n"+
			"⏰ *%s hs*\n"+
			"💇‍♀️ %s\n\n"+
			"⚠️ Respondé con un 1 para confirmar o un 2 para cancelar.",
		clientName, shortDate, startTime, serviceName,
	)
}

func ReplyConfirmed(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"✅ ¡Gracias %s! Tu turno ha sido CONFIRMADO. Te esperamos el %s a las %s.",
		clientName, date, startTime,
	)
}

const ReplyCancelled = "Turno cancelado correctamente. ¡Esperamos verte pronto!"

func AdminNewBooking(clientName, clientPhone, date, startTime, serviceName string) string {
	return fmt.Sprintf(
		"<b>🚨 ¡NUEVA SOLICITUD DE TURNO! 🚨</b>\n\n"+
			"👤 <b>Cliente:</b> %s\n"+
			"📞 <b>Tel:</b> %s\n"+
			"📅 <b>Fecha:</b> %s\n"+
			"🕒 <b>Hora:</b> %s\n"+
			"✨ <b>Servicio:</b> %s",
		clientName, clientPhone, date, startTime, serviceName,
	)
}

func AdminCancelled(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"❌ Turno Cancelado ❌\n👤 Cliente: %s\n📅 Fecha: %s\n🕒 Hora: %s",
		clientName, date, startTime,
	)
}

func AdminClientConfirmed(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"✅ Turno CONFIRMADO por cliente\n👤 Cliente: %s\n📅 Fecha: %s\n🕒 Hora: %s",
		clientName, date, startTime,
	)
}

func AdminClientCancelled(clientName, date, startTime string) string {
	return fmt.Sprintf(
		"❌ Turno CANCELADO por cliente\n👤 Cliente: %s\n📅 Fecha: %s\n🕒 Hora: %s",
		clientName, date, startTime,
	)
}
