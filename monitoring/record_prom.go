// Copyright 2026 the security-vulnogram authors.
// SPDX-License-Identifier: 	AGPL-3.0-or-later
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RecordSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cveprocess_record_saves_total",
	Help: "Number of record saves, partitioned by the state the record landed in",
}, []string{"state"})

var AccessDeniedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cveprocess_access_denied_total",
	Help: "Number of record operations denied by the PMC ACL",
})

var MissingOwnerTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cveprocess_missing_owner_total",
	Help: "Number of records encountered without an owning PMC",
})

var NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cveprocess_notifications_sent_total",
	Help: "Number of state change notification mails handed to the mailer",
})

var NotificationsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cveprocess_notifications_failed_total",
	Help: "Number of state change notification mails the mailer rejected",
})
