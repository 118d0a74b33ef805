package chatbot

// Fixed reply texts. The chat gateway delivers them verbatim.
const (
	msgMenuEmpty = "😔 Lo sentimos, no hay platos disponibles en el menú en este momento."

	msgCancelled = "❌ Pedido cancelado. Escribe \"menú\" para ver nuestros platos."

	msgAddressTooShort = "📍 Por favor, escribe una dirección más completa para la entrega."

	msgOrderFailed = "❌ Hubo un error al procesar tu pedido. Por favor, intenta de nuevo."

	msgNoDishesFound = "🤔 No encontré platos válidos en tu selección.\n\n" +
		"Escribe \"menú\" para ver las opciones disponibles."

	msgWelcome = "👋 ¡Hola! Bienvenido a nuestro restaurante.\n\n" +
		"📜 Escribe \"menú\" para ver nuestros platos del día.\n" +
		"🛒 O escribe directamente el número del plato que deseas.\n\n" +
		"Ejemplo: 1, 3 para pedir los platos 1 y 3."
)

// MsgTurnFailed is the generic answer when a turn blows up before the engine
// can produce a reply. The conversation is left untouched so the customer
// can simply try again.
const MsgTurnFailed = "❌ Ocurrió un error. Por favor, intenta de nuevo escribiendo \"menú\"."
