// Seeds a demo channel against a locally running server: one creator with a
// few published videos and a handful of viewers generating watch traffic.
// Useful for eyeballing the dashboard and the watch-history endpoints.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api/v1"

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

type User struct {
	UserName    string
	Password    string
	AccessToken string
	UserID      string
}

type authData struct {
	User struct {
		ID       string `json:"id"`
		UserName string `json:"userName"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

type video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int64  `json:"views"`
}

func call(method, path, token string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, apiBase+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s failed (%d): %s", method, path, resp.StatusCode, string(bodyBytes))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func registerUser(userName, password string) (*User, error) {
	var data authData
	err := call("POST", "/auth/register", "", map[string]string{
		"userName": userName,
		"email":    userName + "@example.com",
		"fullName": "Demo " + userName,
		"password": password,
	}, &data)
	if err != nil {
		return nil, err
	}

	return &User{
		UserName:    data.User.UserName,
		Password:    password,
		AccessToken: data.AccessToken,
		UserID:      data.User.ID,
	}, nil
}

func publishVideo(token, title string) (*video, error) {
	suffix := randomSuffix()
	var v video
	err := call("POST", "/videos/", token, map[string]interface{}{
		"title":        title,
		"description":  "seeded demo video",
		"videoKey":     fmt.Sprintf("videos/demo-%s.mp4", suffix),
		"thumbnailKey": fmt.Sprintf("thumbnails/demo-%s.png", suffix),
		"duration":     60 + rand.Float64()*540,
	}, &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func watchVideo(token, videoID string) error {
	return call("GET", "/videos/"+videoID, token, nil, nil)
}

func randomSuffix() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("%d_%s", time.Now().Unix(), string(random))
}

func main() {
	rand.Seed(time.Now().UnixNano())

	password := "demopassword123"

	fmt.Println("Registering creator...")
	creator, err := registerUser("creator_"+randomSuffix(), password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register creator: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Creator: %s\n", creator.UserName)

	titles := []string{
		"Getting Started",
		"Deep Dive Part 1",
		"Deep Dive Part 2",
		"Q&A Session",
	}

	fmt.Println("\nPublishing videos...")
	var videos []*video
	for _, title := range titles {
		v, err := publishVideo(creator.AccessToken, title)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to publish %q: %v\n", title, err)
			os.Exit(1)
		}
		videos = append(videos, v)
		fmt.Printf("  ✓ %s (%s)\n", v.Title, v.ID)
	}

	fmt.Println("\nRegistering 5 viewers and generating watch traffic...")
	for i := 1; i <= 5; i++ {
		viewer, err := registerUser(fmt.Sprintf("viewer_%d_%s", i, randomSuffix()), password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register viewer %d: %v\n", i, err)
			os.Exit(1)
		}

		// Each viewer watches a random subset
		for _, v := range videos {
			if rand.Intn(2) == 0 {
				continue
			}
			if err := watchVideo(viewer.AccessToken, v.ID); err != nil {
				fmt.Fprintf(os.Stderr, "Viewer %d failed to watch %s: %v\n", i, v.ID, err)
				os.Exit(1)
			}
		}
		fmt.Printf("  ✓ Viewer %d: %s\n", i, viewer.UserName)
	}

	var stats struct {
		TotalVideos      int64 `json:"totalVideos"`
		TotalViews       int64 `json:"totalViews"`
		TotalSubscribers int64 `json:"totalSubscribers"`
		TotalLikes       int64 `json:"totalLikes"`
	}
	if err := call("GET", "/dashboard/stats", creator.AccessToken, nil, &stats); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch dashboard stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n============================================================")
	fmt.Println("DEMO CHANNEL SEEDED")
	fmt.Println("============================================================")
	fmt.Printf("\nChannel: %s\n", creator.UserName)
	fmt.Printf("  Videos: %d\n", stats.TotalVideos)
	fmt.Printf("  Views:  %d\n", stats.TotalViews)
	fmt.Printf("\nProfile: %s/users/c/%s\n", apiBase, creator.UserName)
	fmt.Printf("Dashboard token: %s\n", creator.AccessToken)
}
