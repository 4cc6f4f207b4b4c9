package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	youtubeAPIBase   = "https://www.googleapis.com/youtube/v3"
	videoCacheTTL    = time.Hour
	minVideoSeconds  = 180 // deja fuera los Shorts
	searchMaxResults = 15
)

// YouTubeController agrega los videos más vistos del canal. El listado no es
// crítico: cualquier fallo devuelve una lista vacía con 200, y el resultado
// bueno se cachea una hora para no agotar la cuota de la API.
type YouTubeController struct {
	apiKey    string
	channelID string
	apiBase   string
	client    *http.Client

	mu       sync.Mutex
	cached   []Video
	cachedAt time.Time
}

type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"publishedAt"`
	ViewCount   int64  `json:"viewCount"`
	Link        string `json:"link"`
}

func NewYouTubeController(apiKey, channelID string) *YouTubeController {
	return &YouTubeController{
		apiKey:    apiKey,
		channelID: channelID,
		apiBase:   youtubeAPIBase,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (ct *YouTubeController) GetVideos(c *fiber.Ctx) error {
	if ct.apiKey == "" {
		return c.JSON(fiber.Map{"videos": []Video{}})
	}

	ct.mu.Lock()
	if ct.cached != nil && time.Since(ct.cachedAt) < videoCacheTTL {
		videos := ct.cached
		ct.mu.Unlock()
		c.Set("Cache-Control", "public, s-maxage=3600, stale-while-revalidate=7200")
		return c.JSON(fiber.Map{"videos": videos})
	}
	ct.mu.Unlock()

	videos, err := ct.fetchVideos()
	if err != nil {
		// listado no crítico: sin videos pero nunca un error HTTP
		return c.JSON(fiber.Map{"videos": []Video{}})
	}

	ct.mu.Lock()
	ct.cached = videos
	ct.cachedAt = time.Now()
	ct.mu.Unlock()

	c.Set("Cache-Control", "public, s-maxage=3600, stale-while-revalidate=7200")
	return c.JSON(fiber.Map{"videos": videos})
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type detailsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Maxres struct {
					URL string `json:"url"`
				} `json:"maxres"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// fetchVideos busca videos medianos (4-20min) y largos (>20min) por número
// de vistas y luego pide sus detalles para filtrar Shorts.
func (ct *YouTubeController) fetchVideos() ([]Video, error) {
	var ids []string
	for _, duration := range []string{"medium", "long"} {
		searchURL := fmt.Sprintf(
			"%s/search?part=snippet&channelId=%s&type=video&order=viewCount&videoDuration=%s&maxResults=%d&key=%s",
			ct.apiBase, ct.channelID, duration, searchMaxResults, ct.apiKey,
		)

		var result searchResponse
		if err := ct.getJSON(searchURL, &result); err != nil {
			continue
		}
		for _, item := range result.Items {
			if item.ID.VideoID != "" {
				ids = append(ids, item.ID.VideoID)
			}
		}
	}

	if len(ids) == 0 {
		return []Video{}, nil
	}

	detailsURL := fmt.Sprintf(
		"%s/videos?part=contentDetails,statistics,snippet&id=%s&key=%s",
		ct.apiBase, url.QueryEscape(strings.Join(ids, ",")), ct.apiKey,
	)

	var details detailsResponse
	if err := ct.getJSON(detailsURL, &details); err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(details.Items))
	for _, item := range details.Items {
		if parseDuration(item.ContentDetails.Duration) < minVideoSeconds {
			continue
		}

		thumbnail := item.Snippet.Thumbnails.Maxres.URL
		if thumbnail == "" {
			thumbnail = item.Snippet.Thumbnails.High.URL
		}
		if thumbnail == "" {
			thumbnail = fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", item.ID)
		}

		viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)

		videos = append(videos, Video{
			ID:          item.ID,
			Title:       item.Snippet.Title,
			Thumbnail:   thumbnail,
			PublishedAt: item.Snippet.PublishedAt,
			ViewCount:   viewCount,
			Link:        fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID),
		})
	}

	sort.Slice(videos, func(i, j int) bool {
		return videos[i].ViewCount > videos[j].ViewCount
	})

	return videos, nil
}

func (ct *YouTubeController) getJSON(rawURL string, out interface{}) error {
	resp, err := ct.client.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var durationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDuration convierte una duración ISO 8601 (PT1H2M3S) a segundos.
func parseDuration(duration string) int {
	match := durationRe.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return hours*3600 + minutes*60 + seconds
}
