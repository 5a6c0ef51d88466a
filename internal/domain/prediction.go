package domain

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low Risk"
	RiskMedium RiskLevel = "Medium Risk"
	RiskHigh   RiskLevel = "High Risk"
)

type Prediction struct {
	BookingID   string
	Probability float64
	RiskLevel   RiskLevel
}
