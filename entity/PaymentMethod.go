package entity

// Payment method values — บันทึกอย่างเดียว ไม่ได้ตัดเงินจริง
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// card/upi ถือว่าจ่ายแล้วตอนสั่ง ส่วน cash เก็บเงินทีหลัง
func IsPrepaid(method string) bool {
	return method != "" && method != PaymentCash
}
