package action

import "github.com/prometheus/client_golang/prometheus"

var actionTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "crud_actions_total", Help: "Count of CRUD actions by outcome kind"},
	[]string{"action", "kind"},
)

func init() { prometheus.MustRegister(actionTotal) }
