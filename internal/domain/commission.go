package domain

import "math"

// CommissionRates ставки комиссии платформы в процентах
type CommissionRates struct {
	CustomerPct float64
	PartnerPct  float64
}

// Charges итог расчёта комиссии для одного бронирования
type Charges struct {
	CustomerCharge  float64 // что платит клиент
	PartnerPayout   float64 // что получает партнер
	PlatformRevenue float64 // что остаётся платформе
}

// CalculateCharges вычисляет разбивку платежа по валовой цене услуги
//
//	customerCharge  = gross * (1 + customerPct/100)
//	partnerPayout   = gross * (1 - partnerPct/100)
//	platformRevenue = customerCharge - partnerPayout
//
// Округление до 2 знаков выполняется один раз на финальных значениях,
// промежуточные множители не округляются
func CalculateCharges(gross float64, rates CommissionRates) Charges {
	customerCharge := gross * (1 + rates.CustomerPct/100)
	partnerPayout := gross * (1 - rates.PartnerPct/100)
	platformRevenue := customerCharge - partnerPayout

	return Charges{
		CustomerCharge:  round2(customerCharge),
		PartnerPayout:   round2(partnerPayout),
		PlatformRevenue: round2(platformRevenue),
	}
}

// round2 округляет до 2 знаков после запятой
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
