package utils

import (
	"strings"

	"khadamati-server/models"
)

// Direction values for the two supported languages
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// labels holds the full bilingual label table, resident at all times.
// Keys map to per-language display strings used by API clients.
var labels = map[string]map[models.Language]string{
	// Common
	"app_name":  {models.LanguageEnglish: "Khadamati", models.LanguageArabic: "خدماتي"},
	"tagline":   {models.LanguageEnglish: "Find trusted local service providers", models.LanguageArabic: "اعثر على مزودي خدمات موثوقين"},
	"loading":   {models.LanguageEnglish: "Loading...", models.LanguageArabic: "جاري التحميل..."},
	"error":     {models.LanguageEnglish: "An error occurred", models.LanguageArabic: "حدث خطأ"},
	"save":      {models.LanguageEnglish: "Save", models.LanguageArabic: "حفظ"},
	"cancel":    {models.LanguageEnglish: "Cancel", models.LanguageArabic: "إلغاء"},
	"search":    {models.LanguageEnglish: "Search", models.LanguageArabic: "بحث"},
	"filter":    {models.LanguageEnglish: "Filter", models.LanguageArabic: "تصفية"},
	"all":       {models.LanguageEnglish: "All", models.LanguageArabic: "الكل"},
	"confirm":   {models.LanguageEnglish: "Confirm", models.LanguageArabic: "تأكيد"},

	// Navigation
	"home":     {models.LanguageEnglish: "Home", models.LanguageArabic: "الرئيسية"},
	"services": {models.LanguageEnglish: "Services", models.LanguageArabic: "الخدمات"},
	"bookings": {models.LanguageEnglish: "Bookings", models.LanguageArabic: "الحجوزات"},
	"profile":  {models.LanguageEnglish: "Profile", models.LanguageArabic: "الملف الشخصي"},

	// Booking statuses
	"pending":     {models.LanguageEnglish: "Pending", models.LanguageArabic: "قيد الانتظار"},
	"confirmed":   {models.LanguageEnglish: "Confirmed", models.LanguageArabic: "مؤكد"},
	"in_progress": {models.LanguageEnglish: "In Progress", models.LanguageArabic: "قيد التنفيذ"},
	"completed":   {models.LanguageEnglish: "Completed", models.LanguageArabic: "مكتمل"},
	"cancelled":   {models.LanguageEnglish: "Cancelled", models.LanguageArabic: "ملغي"},

	// Catalog
	"browse_services": {models.LanguageEnglish: "Browse Services", models.LanguageArabic: "تصفح الخدمات"},
	"book_now":        {models.LanguageEnglish: "Book Now", models.LanguageArabic: "احجز الآن"},
	"price":           {models.LanguageEnglish: "Price", models.LanguageArabic: "السعر"},
	"per_hour":        {models.LanguageEnglish: "per hour", models.LanguageArabic: "للساعة"},
	"fixed":           {models.LanguageEnglish: "fixed", models.LanguageArabic: "ثابت"},
	"no_services":     {models.LanguageEnglish: "No services found", models.LanguageArabic: "لا توجد خدمات"},
	"no_bookings":     {models.LanguageEnglish: "No bookings yet", models.LanguageArabic: "لا توجد حجوزات بعد"},

	// Payment
	"payment":               {models.LanguageEnglish: "Payment", models.LanguageArabic: "الدفع"},
	"payment_method":        {models.LanguageEnglish: "Payment Method", models.LanguageArabic: "طريقة الدفع"},
	"paypal":                {models.LanguageEnglish: "PayPal", models.LanguageArabic: "باي بال"},
	"cash_on_delivery":      {models.LanguageEnglish: "Cash on Delivery", models.LanguageArabic: "الدفع عند الاستلام"},
	"payment_success":       {models.LanguageEnglish: "Payment Successful!", models.LanguageArabic: "تم الدفع بنجاح!"},
	"payment_failed":        {models.LanguageEnglish: "Payment Failed", models.LanguageArabic: "فشل الدفع"},
	"cod_pending":           {models.LanguageEnglish: "Awaiting Cash Payment", models.LanguageArabic: "بانتظار الدفع النقدي"},
	"cod_instructions":      {models.LanguageEnglish: "You will pay the provider in cash after service completion.", models.LanguageArabic: "ستدفع لمزود الخدمة نقداً بعد إتمام الخدمة."},
	"marketplace_commission": {models.LanguageEnglish: "Marketplace Commission", models.LanguageArabic: "عمولة المنصة"},
	"provider_earnings":      {models.LanguageEnglish: "Provider Earnings", models.LanguageArabic: "أرباح مزود الخدمة"},

	// Booking flow messages
	"booking_success": {models.LanguageEnglish: "Booking created successfully!", models.LanguageArabic: "تم إنشاء الحجز بنجاح!"},
	"review_success":  {models.LanguageEnglish: "Review submitted successfully!", models.LanguageArabic: "تم إرسال التقييم بنجاح!"},
	"no_addresses":    {models.LanguageEnglish: "Please add a service address before booking", models.LanguageArabic: "يرجى إضافة عنوان قبل الحجز"},
}

// IsValidLanguage reports whether lang is one of the two supported codes
func IsValidLanguage(lang models.Language) bool {
	return lang == models.LanguageEnglish || lang == models.LanguageArabic
}

// Direction returns the text direction for a language
func Direction(lang models.Language) string {
	if lang == models.LanguageArabic {
		return DirectionRTL
	}
	return DirectionLTR
}

// Label returns the display string for a key in the given language.
// Unknown keys return the key itself so missing entries are visible.
func Label(lang models.Language, key string) string {
	entry, ok := labels[key]
	if !ok {
		return key
	}
	if v := entry[lang]; v != "" {
		return v
	}
	return key
}

// Labels returns the whole table for one language
func Labels(lang models.Language) map[string]string {
	out := make(map[string]string, len(labels))
	for key, entry := range labels {
		if v := entry[lang]; v != "" {
			out[key] = v
		} else {
			out[key] = key
		}
	}
	return out
}

// LocalizedText picks the bilingual field matching the active language,
// falling back to the other language, then to the empty string.
func LocalizedText(en, ar string, lang models.Language) string {
	if lang == models.LanguageArabic {
		if ar != "" {
			return ar
		}
		return en
	}
	if en != "" {
		return en
	}
	return ar
}

// LocalizedTextPtr is LocalizedText over nullable fields
func LocalizedTextPtr(en, ar *string, lang models.Language) string {
	var e, a string
	if en != nil {
		e = *en
	}
	if ar != nil {
		a = *ar
	}
	return LocalizedText(e, a, lang)
}

// ResolveLanguage picks the request language: explicit query value first,
// then the user's stored preference, then the Accept-Language header,
// defaulting to English.
func ResolveLanguage(query string, preferred models.Language, acceptHeader string) models.Language {
	if lang := models.Language(query); IsValidLanguage(lang) {
		return lang
	}
	if IsValidLanguage(preferred) {
		return preferred
	}
	if strings.HasPrefix(strings.ToLower(acceptHeader), "ar") {
		return models.LanguageArabic
	}
	return models.LanguageEnglish
}
