package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pageturn"

var (
	ListingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Book listings submitted for approval.",
	})

	GatewayOrders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_orders_total",
		Help:      "Payment gateway order creation attempts by result.",
	}, []string{"result"})

	PaymentVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_verifications_total",
		Help:      "Payment signature verifications by result.",
	}, []string{"result"})

	OTPEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_emails_total",
		Help:      "Password reset OTP emails by result.",
	}, []string{"result"})
)

const (
	ResultCreated  = "created"
	ResultFailed   = "failed"
	ResultVerified = "verified"
	ResultRejected = "rejected"
	ResultSent     = "sent"
)
