package config

import (
	"reflect"
	"strings"

	logx "bizcal/pkg/logx"
)

// SummarizeConfigChange returns (1) a compact list of changed sections and
// (2) safe structured attrs for logging (never includes secrets like the
// pprof token).
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 5)
	attrs := make([]logx.Field, 0, 12)

	// Logging
	if !reflect.DeepEqual(oldCfg.Logging, newCfg.Logging) {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logging.level", newCfg.Logging.Level),
			logx.Bool("logging.console", newCfg.Logging.Console),
			logx.Bool("logging.file", newCfg.Logging.File.Enabled),
		)
	}

	// Calendar (hours table + delivery rules)
	if !reflect.DeepEqual(oldCfg.Calendar, newCfg.Calendar) {
		changed = append(changed, "calendar")
		attrs = append(attrs,
			logx.String("calendar.country", newCfg.Calendar.Country),
			logx.String("calendar.policy", strings.TrimSpace(newCfg.Calendar.Delivery.Policy)),
			logx.Bool("calendar.allow_weekend", newCfg.Calendar.Delivery.AllowWeekend),
			logx.Bool("calendar.allow_holiday", newCfg.Calendar.Delivery.AllowHoliday),
		)
	}

	// Storage
	if !reflect.DeepEqual(oldCfg.Storage, newCfg.Storage) {
		changed = append(changed, "storage")
		if newCfg.Storage != nil {
			attrs = append(attrs, logx.String("storage.driver", newCfg.Storage.Driver))
		}
	}

	// Refresh
	if !reflect.DeepEqual(oldCfg.Refresh, newCfg.Refresh) {
		changed = append(changed, "refresh")
		attrs = append(attrs,
			logx.Bool("refresh.enabled", newCfg.Refresh.Enabled),
			logx.String("refresh.spec", strings.TrimSpace(newCfg.Refresh.Spec)),
		)
	}

	// Pprof (never log token)
	if oldCfg.Pprof.Enabled != newCfg.Pprof.Enabled ||
		oldCfg.Pprof.Addr != newCfg.Pprof.Addr ||
		oldCfg.Pprof.Prefix != newCfg.Pprof.Prefix ||
		oldCfg.Pprof.AllowInsecure != newCfg.Pprof.AllowInsecure ||
		(oldCfg.Pprof.Token != "") != (newCfg.Pprof.Token != "") {
		changed = append(changed, "pprof")
		attrs = append(attrs,
			logx.Bool("pprof.enabled", newCfg.Pprof.Enabled),
			logx.Bool("pprof.token_set", newCfg.Pprof.Token != ""),
		)
	}

	return changed, attrs
}
