package sensor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"co2watch/internal/logger"
	"co2watch/internal/models"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

const defaultFetchTimeout = 15 * time.Second

// MeshClient scrapes the building-devices page of the CO₂ measurement site.
// The page renders one table row per device: first cell is the room label,
// second cell the current reading in ppm.
type MeshClient struct {
	http *resty.Client
	url  string
	log  *logger.Logger
}

var _ Fetcher = (*MeshClient)(nil)

// NewMeshClient builds a client for the given page URL. A non-positive
// timeout falls back to the default.
func NewMeshClient(url string, timeout time.Duration, log *logger.Logger) *MeshClient {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/html")
	return &MeshClient{http: client, url: url, log: log}
}

// FetchSnapshot downloads the page and extracts room readings from its table
// rows, preserving document order. Rows whose reading cell is not an integer
// are skipped. Network errors and non-2xx responses fail the fetch.
func (c *MeshClient) FetchSnapshot(ctx context.Context) (models.SensorSnapshot, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch sensor page: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch sensor page: unexpected status %d", resp.StatusCode())
	}

	snap, err := parseSnapshot(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse sensor page: %w", err)
	}
	if c.log != nil {
		c.log.Infow("sensor_snapshot_fetched", "rooms", len(snap))
	}
	return snap, nil
}

// parseSnapshot walks the HTML tree collecting <tr> rows with at least two
// cells. Header rows and rows with non-numeric readings fall through the
// Atoi check and are dropped without failing the snapshot.
func parseSnapshot(r *strings.Reader) (models.SensorSnapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	snap := make(models.SensorSnapshot, 0, 16)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells := rowCells(n)
			if len(cells) >= 2 {
				room := strings.TrimSpace(cells[0])
				ppm, err := strconv.Atoi(strings.TrimSpace(cells[1]))
				if err == nil && room != "" {
					snap = append(snap, models.RoomReading{Room: room, PPM: ppm})
				}
			}
			return // don't descend into an already-consumed row
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return snap, nil
}

// rowCells returns the text content of each <td> of a table row.
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, nodeText(c))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
