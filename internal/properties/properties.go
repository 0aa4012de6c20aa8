package properties

import (
	"os"
	"strconv"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// DataPath holds fetched elevation tiles, cache entries and exports.
func DataPath() string {
	if p := os.Getenv("DATA_PATH"); p != "" {
		return p
	}
	return RootPath() + "/data"
}

func CopernicusClientID() string {
	return os.Getenv("COPERNICUS_CLIENT_ID")
}

func CopernicusClientSecret() string {
	return os.Getenv("COPERNICUS_CLIENT_SECRET")
}

func CopernicusTokenURL() string {
	return os.Getenv("COPERNICUS_TOKEN_URL")
}

// OutputEPSG is the spatial reference stamped on exported GeoTIFFs.
// Defaults to 4326, matching the Copernicus GLO-30 tiles.
func OutputEPSG() int {
	if v := os.Getenv("OUTPUT_EPSG"); v != "" {
		if epsg, err := strconv.Atoi(v); err == nil && epsg > 0 {
			return epsg
		}
	}
	return 4326
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

type Color struct {
	R, G, B uint8
}

// RiskColorMap colors each risk class on rendered maps, a red-yellow-green
// ramp running from very low (1) to very high (5).
var RiskColorMap = map[int]Color{
	1: {26, 152, 80},
	2: {166, 217, 106},
	3: {254, 224, 139},
	4: {244, 109, 67},
	5: {215, 48, 39},
}

// NoDataColor marks cells without a risk score on rendered maps.
var NoDataColor = Color{64, 64, 64}
