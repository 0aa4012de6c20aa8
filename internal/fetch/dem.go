package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/emberwatch/emberwatch-risk-poc/internal/cache"
	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/raster"
)

const (
	processURL          = "https://sh.dataspace.copernicus.eu/api/v1/process"
	demInstance         = "COPERNICUS_30"
	demResolutionMeters = 30.0
	maxRequestPixels    = 2500
	requestRetries      = 10
	retryDelay          = 5 * time.Second
)

// demEvalscript asks the process API for the bare elevation band as float32.
const demEvalscript = `
//VERSION=3
function setup() {
  return {
    input: ["DEM"],
    output: {
      id: "default",
      bands: 1,
      sampleType: SampleType.FLOAT32,
    },
  }
}

function evaluatePixel(sample) {
  return [sample.DEM]
}
`

// BBox is a WGS84 bounding box in degrees.
type BBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

func (b BBox) validate() error {
	if b.East <= b.West || b.North <= b.South {
		return fmt.Errorf("empty bounding box: west=%g south=%g east=%g north=%g", b.West, b.South, b.East, b.North)
	}
	return nil
}

func calculatePixels(distanceDeg float64) int {
	pixels := distanceDeg * (111_000.0 / demResolutionMeters)
	if pixels < 1 {
		return 1
	}
	if pixels > maxRequestPixels {
		return maxRequestPixels
	}
	return int(pixels)
}

// DEM downloads the Copernicus GLO-30 elevation tile covering box and loads
// it as a grid. Tiles are cached under the data directory so repeated runs
// over the same area stay offline.
func DEM(ctx context.Context, box BBox) (*grid.Grid, error) {
	tif, err := demBytes(ctx, box)
	if err != nil {
		return nil, err
	}

	// godal reads from a path, so park the tile in a temp file.
	tmp, err := os.CreateTemp("", "emberwatch-dem-*.tiff")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp tile: %v", err)
	}
	path := tmp.Name()
	defer os.Remove(path)
	if _, err := tmp.Write(tif); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp tile: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp tile: %v", err)
	}

	return raster.ReadGeoTIFF(path)
}

// DEMToFile downloads the tile like DEM but also keeps the raw GeoTIFF at
// path for later reuse.
func DEMToFile(ctx context.Context, box BBox, path string) (*grid.Grid, error) {
	tif, err := demBytes(ctx, box)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create tile directory: %v", err)
	}
	if err := os.WriteFile(path, tif, 0644); err != nil {
		return nil, fmt.Errorf("failed to save tile: %v", err)
	}
	return raster.ReadGeoTIFF(path)
}

func demBytes(ctx context.Context, box BBox) ([]byte, error) {
	if err := box.validate(); err != nil {
		return nil, err
	}

	tileCache := cache.NewFileCache[[]byte](filepath.Join(properties.DataPath(), "dem"))
	key := tileCache.GenerateKey(demInstance, box.West, box.South, box.East, box.North)
	if tif, ok := tileCache.Get(key); ok {
		return tif, nil
	}

	tif, err := requestDEM(ctx, box)
	if err != nil {
		return nil, err
	}
	if err := tileCache.Set(key, tif); err != nil {
		return nil, err
	}
	return tif, nil
}

func processPayload(box BBox) ([]byte, error) {
	widthPixels := calculatePixels(box.East - box.West)
	heightPixels := calculatePixels(box.North - box.South)

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"bbox": []float64{box.West, box.South, box.East, box.North},
			},
			"data": []map[string]interface{}{
				{
					"type": "dem",
					"dataFilter": map[string]string{
						"demInstance": demInstance,
					},
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": demEvalscript,
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}
	return requestBody, nil
}

func requestDEM(ctx context.Context, box BBox) ([]byte, error) {
	requestBody, err := processPayload(box)
	if err != nil {
		return nil, err
	}

	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(ctx)

	var lastErr error
	for attempt := 1; attempt <= requestRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, processURL, bytes.NewReader(requestBody))
		if err != nil {
			return nil, fmt.Errorf("failed to build process request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		response, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
			time.Sleep(retryDelay)
			continue
		}

		body, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %v", err)
			time.Sleep(retryDelay)
			continue
		}

		if response.StatusCode == http.StatusOK {
			return body, nil
		}
		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("unauthorized access, check your client ID and secret")
		}

		lastErr = fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
		fmt.Printf("Attempt %d failed: %v\n", attempt, lastErr)
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to request DEM after %d attempts: %v", requestRetries, lastErr)
}
