package order

import (
	"strconv"
	"strings"
	"time"
)

// GenerateOrderNumber builds {PREFIX}-{BASE36(unix millis)}
func GenerateOrderNumber(origin Origin, now time.Time) string {
	token := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return origin.OrderNumberPrefix() + "-" + token
}
