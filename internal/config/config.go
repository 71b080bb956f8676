package config

import "os"

type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	RazorpayKeyID  string
	RazorpaySecret string
	RazorpayAPIURL string
}

func Load() Config {
	addr := os.Getenv("THALI_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	apiURL := os.Getenv("RAZORPAY_API_URL")
	if apiURL == "" {
		apiURL = "https://api.razorpay.com"
	}

	return Config{
		Addr:           addr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RazorpayKeyID:  os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),
		RazorpayAPIURL: apiURL,
	}
}
