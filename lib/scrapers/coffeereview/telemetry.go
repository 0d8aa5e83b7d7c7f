package coffeereview

import "brewmine/lib/telemetry"

var tracer = telemetry.Tracer("brewmine/scrapers/coffeereview")
