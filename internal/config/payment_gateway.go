package config

type PaymentConfig struct {
	RazorpayKeyID     string `yaml:"razorpay_key_id"`
	RazorpayKeySecret string `yaml:"razorpay_key_secret"`
	Currency          string `yaml:"currency"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		Currency:          getEnv("PAYMENT_CURRENCY", "INR"),
	}
}

func (c *PaymentConfig) Configured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}
