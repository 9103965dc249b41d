package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateWorkerMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type SwapDecisionMailData struct {
	FullName  string `json:"fullName"`
	ShiftDate string `json:"shiftDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Decision  string `json:"decision"`
}

type PayslipReadyMailData struct {
	FullName  string `json:"fullName"`
	RunName   string `json:"runName"`
	NetAmount string `json:"netAmount"`
	Currency  string `json:"currency"`
}
