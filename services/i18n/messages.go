// Package i18n holds the fixed response templates of the assistant, keyed by
// language and message. Nothing is machine translated at runtime.
package i18n

import (
	"fmt"

	"pilgrimpath/models"
)

// Key names one response template. StartBooking and SlotNotFound take the
// bullet list of slot times, SlotSelected the slot time, BookingConfirmed the
// party size, AlreadyBooked the booking id, and Receipt the booking id, slot
// time and party size.
type Key int

const (
	StartBooking Key = iota
	SlotNotFound
	SlotSelected
	AskPartySize
	BookingConfirmed
	BookingHelp
	AlreadyBooked
	NoSlotsOpen
	SOSAlert
	Receipt
)

// Keys lists every template key.
var Keys = []Key{
	StartBooking, SlotNotFound, SlotSelected, AskPartySize, BookingConfirmed,
	BookingHelp, AlreadyBooked, NoSlotsOpen, SOSAlert, Receipt,
}

// fallbacks routes languages without their own table to the closest one we have.
var fallbacks = map[models.Language]models.Language{
	models.LangKutchi:  models.LangGujarati,
	models.LangMarathi: models.LangHindi,
	models.LangSindhi:  models.LangHindi,
	models.LangTamil:   models.LangEnglish,
	models.LangOdia:    models.LangEnglish,
}

// Lookup returns the template stored for exactly lang, without fallback.
func Lookup(lang models.Language, key Key) (string, bool) {
	t, ok := templates[lang][key]
	return t, ok
}

// Resolve returns the language whose table answers for lang.
func Resolve(lang models.Language) models.Language {
	if _, ok := templates[lang]; ok {
		return lang
	}
	if fb, ok := fallbacks[lang]; ok {
		return fb
	}
	return models.LangEnglish
}

// Text renders the template for key in lang.
func Text(lang models.Language, key Key, args ...any) string {
	tmpl, ok := Lookup(Resolve(lang), key)
	if !ok {
		tmpl = templates[models.LangEnglish][key]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

var templates = map[models.Language]map[Key]string{
	models.LangEnglish: {
		StartBooking:     "I'd be happy to help you book a darshan slot! Here are some available times today:\n%s\n\nWhat time would you prefer for your darshan?",
		SlotNotFound:     "I couldn't find that time slot. Here are the currently available times:\n%s\n\nWhich time would you prefer?",
		SlotSelected:     "Great! I've selected the %s slot for you. Now I need some details for the booking.\n\nHow many people are in your group? (Including yourself)",
		AskPartySize:     "I need to know how many people are in your group. Please tell me a number between 1 and 10.",
		BookingConfirmed: "Perfect! I've booked a darshan slot for %d people. I'm generating your QR code now...",
		BookingHelp:      "I'm here to help you book a darshan slot. What time would you prefer?",
		AlreadyBooked:    "Your darshan booking %s is already confirmed. Start a new conversation to book another slot.",
		NoSlotsOpen:      "No darshan slots are open right now.",
		SOSAlert:         "Emergency alert activated! Temple authorities have been notified of your location. Please stay calm, help is on the way.",
		Receipt:          "🎉 **Booking Confirmed!**\n\n**Booking ID:** %s\n**Time Slot:** %s\n**Group Size:** %d people\n\nYour booking has been saved to your history. You can view it anytime in the History section.",
	},
	models.LangHindi: {
		StartBooking:     "मैं आपकी दर्शन स्लॉट बुक करने में मदद करूंगा! आज ये समय उपलब्ध हैं:\n%s\n\nआप दर्शन के लिए कौन सा समय पसंद करेंगे?",
		SlotNotFound:     "मुझे वह समय स्लॉट नहीं मिला। ये समय अभी उपलब्ध हैं:\n%s\n\nआप कौन सा समय पसंद करेंगे?",
		SlotSelected:     "बेहतरीन! मैंने आपके लिए %s स्लॉट चुना है। अब मुझे बुकिंग के लिए कुछ विवरण चाहिए।\n\nआपके समूह में कितने लोग हैं? (खुद को मिलाकर)",
		AskPartySize:     "मुझे जानना है कि आपके समूह में कितने लोग हैं। कृपया 1 से 10 के बीच एक संख्या बताएं।",
		BookingConfirmed: "सही! मैंने %d लोगों के लिए दर्शन स्लॉट बुक कर दिया है। मैं अभी आपका QR कोड जनरेट कर रहा हूं...",
		BookingHelp:      "मैं आपकी दर्शन स्लॉट बुक करने में मदद करने के लिए यहां हूं। आप कौन सा समय पसंद करेंगे?",
		AlreadyBooked:    "आपकी दर्शन बुकिंग %s पहले से पुष्टि हो चुकी है। दूसरा स्लॉट बुक करने के लिए नई बातचीत शुरू करें।",
		NoSlotsOpen:      "अभी कोई दर्शन स्लॉट उपलब्ध नहीं है।",
		SOSAlert:         "आपातकालीन अलर्ट सक्रिय! मंदिर अधिकारियों को आपके स्थान की सूचना दे दी गई है। कृपया शांत रहें, मदद रास्ते में है।",
		Receipt:          "🎉 **बुकिंग पुष्टि हुई!**\n\n**बुकिंग आईडी:** %s\n**समय स्लॉट:** %s\n**समूह का आकार:** %d लोग\n\nआपकी बुकिंग आपके इतिहास में सहेजी गई है। आप इसे कभी भी इतिहास अनुभाग में देख सकते हैं।",
	},
	models.LangGujarati: {
		StartBooking:     "હું તમને દર્શન સ્લોટ બુક કરવામાં મદદ કરીશ! આજે આ સમય ઉપલબ્ધ છે:\n%s\n\nતમે દર્શન માટે કયો સમય પસંદ કરશો?",
		SlotNotFound:     "મને તે સમય સ્લોટ મળ્યો નથી. અહીં હાલમાં ઉપલબ્ધ સમય છે:\n%s\n\nતમે કયો સમય પસંદ કરશો?",
		SlotSelected:     "સરસ! મેં તમારા માટે %s સ્લોટ પસંદ કર્યો છે. હવે મને બુકિંગ માટે કેટલાક વિગતો જોઈએ.\n\nતમારા જૂથમાં કેટલા લોકો છે? (સ્વયંને સમાવીને)",
		AskPartySize:     "મને જાણવું છે કે તમારા જૂથમાં કેટલા લોકો છે. કૃપા કરીને 1 થી 10 વચ્ચે એક સંખ્યા જણાવો.",
		BookingConfirmed: "પરફેક્ટ! મેં %d લોકો માટે દર્શન સ્લોટ બુક કરી દીધું છે. હું હમણાં તમારો QR કોડ જનરેટ કરી રહ્યો છું...",
		BookingHelp:      "હું તમને દર્શન સ્લોટ બુક કરવામાં મદદ કરવા માટે અહીં છું. તમે કયો સમય પસંદ કરશો?",
		AlreadyBooked:    "તમારી દર્શન બુકિંગ %s પહેલેથી પુષ્ટિ થઈ ગઈ છે. બીજો સ્લોટ બુક કરવા માટે નવી વાતચીત શરૂ કરો.",
		NoSlotsOpen:      "હાલમાં કોઈ દર્શન સ્લોટ ઉપલબ્ધ નથી.",
		SOSAlert:         "કટોકટી ચેતવણી સક્રિય! મંદિર અધિકારીઓને તમારા સ્થાનની જાણ કરવામાં આવી છે. કૃપા કરીને શાંત રહો, મદદ રસ્તામાં છે.",
		Receipt:          "🎉 **બુકિંગ પુષ્ટિ થઈ!**\n\n**બુકિંગ આઈડી:** %s\n**સમય સ્લોટ:** %s\n**જૂથનું કદ:** %d લોકો\n\nતમારી બુકિંગ તમારા ઇતિહાસમાં સાચવવામાં આવી છે. તમે તેને કોઈપણ સમયે ઇતિહાસ વિભાગમાં જોઈ શકો છો.",
	},
}
