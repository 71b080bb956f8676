package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the gateway signature for an order/payment reference pair:
// HMAC-SHA256 over "<orderRef>|<paymentRef>" keyed with the account secret,
// hex encoded. The order of the two refs matters.
func Sign(razorpayOrderID, razorpayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(razorpayOrderID + "|" + razorpayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares the provided signature against the expected one
// in constant time.
func VerifySignature(razorpayOrderID, razorpayPaymentID, provided, secret string) bool {
	expected := Sign(razorpayOrderID, razorpayPaymentID, secret)
	return hmac.Equal([]byte(expected), []byte(provided))
}
