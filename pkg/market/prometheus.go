package market

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for monitoring service.
var (
	//purchasesCompleted prometheus metric.
	purchasesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of successfully settled purchases",
			Name:      "purchases_completed",
			Namespace: "tokenmart",
		},
	)
	//purchasesFailed prometheus metric.
	purchasesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of purchases rejected or rolled back",
			Name:      "purchases_failed",
			Namespace: "tokenmart",
		},
	)
	//collectionsCreated prometheus metric.
	collectionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of collections created",
			Name:      "collections_created",
			Namespace: "tokenmart",
		},
	)
	//escrowBalance prometheus metric.
	escrowBalance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Native currency balance of the holding account",
			Name:      "escrow_balance",
			Namespace: "tokenmart",
		},
	)
)

func init() {
	prometheus.MustRegister(
		purchasesCompleted,
		purchasesFailed,
		collectionsCreated,
		escrowBalance,
	)
}

func updateEscrowMetric(balance *uint256.Int) {
	// Full-width conversion, balances beyond 2^64 lose precision but not
	// magnitude.
	f, _ := new(big.Float).SetInt(balance.ToBig()).Float64()
	escrowBalance.Set(f)
}
