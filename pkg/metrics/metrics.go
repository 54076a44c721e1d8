package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sustainamine = "sustainamine"

	// Estimate metrics
	estimatesTotal       = "estimates_total"
	complianceFlagsTotal = "compliance_flags_total"
	validationErrors     = "validation_errors_total"

	// Report metrics
	reportsTotal = "reports_total"

	// Event metrics
	eventsTotal = "events_total"

	// Labels
	metalLabel    = "metal"
	routeLabel    = "route"
	topicLabel    = "topic"
	sourceLabel   = "source"
	fieldLabel    = "field"
	formatLabel   = "format"
	kindLabel     = "kind"
	reportStatus  = "status"
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusDropped = "dropped"
)

/**
* Metrics definition
**/
var estimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sustainamine,
		Name:      estimatesTotal,
		Help:      "number of estimates computed",
	},
	[]string{metalLabel, routeLabel},
)

var complianceFlagsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sustainamine,
		Name:      complianceFlagsTotal,
		Help:      "number of compliance flags raised",
	},
	[]string{topicLabel, sourceLabel},
)

var validationErrorsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sustainamine,
		Name:      validationErrors,
		Help:      "number of rejected estimate requests by offending field",
	},
	[]string{fieldLabel},
)

var reportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sustainamine,
		Name:      reportsTotal,
		Help:      "number of generated summary reports",
	},
	[]string{formatLabel, reportStatus},
)

var eventsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: sustainamine,
		Name:      eventsTotal,
		Help:      "number of audit events by outcome",
	},
	[]string{kindLabel, reportStatus},
)

func IncreaseEstimatesTotalMetric(metal, route string) {
	estimatesTotalMetric.With(prometheus.Labels{
		metalLabel: metal,
		routeLabel: route,
	}).Inc()
}

func IncreaseComplianceFlagsMetric(topic, source string) {
	complianceFlagsTotalMetric.With(prometheus.Labels{
		topicLabel:  topic,
		sourceLabel: source,
	}).Inc()
}

func IncreaseValidationErrorsMetric(field string) {
	validationErrorsMetric.With(prometheus.Labels{fieldLabel: field}).Inc()
}

func IncreaseReportsTotalMetric(format, status string) {
	reportsTotalMetric.With(prometheus.Labels{
		formatLabel:  format,
		reportStatus: status,
	}).Inc()
}

func IncreaseEventsTotalMetric(kind, status string) {
	eventsTotalMetric.With(prometheus.Labels{
		kindLabel:    kind,
		reportStatus: status,
	}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimatesTotalMetric)
	prometheus.MustRegister(complianceFlagsTotalMetric)
	prometheus.MustRegister(validationErrorsMetric)
	prometheus.MustRegister(reportsTotalMetric)
	prometheus.MustRegister(eventsTotalMetric)
}
