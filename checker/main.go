package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dexwatch/stats-api/models"
)

// Cross-checks a running API: the sum of per-pair one-day volumes should
// land close to the global one-day volume, and the daily chart should sum
// to the weekly chart. Offsets and excluded pairs make these approximate,
// hence eyeball output instead of exit codes.
func main() {
	base := os.Getenv("DEX_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	resp, err := http.Get(base + "/pairs")
	if err != nil || resp.StatusCode != 200 {
		log.Fatalln("failure getting pairs:", resp, err)
	}
	defer resp.Body.Close()

	var pairs struct {
		Pairs []models.PairStats `json:"pairs"`
	}
	err = json.NewDecoder(resp.Body).Decode(&pairs)
	if err != nil {
		log.Fatalln("error decoding pairs", err)
	}

	var pairVol float64
	for _, p := range pairs.Pairs {
		pairVol += p.OneDayVolumeUSD
	}

	resp, err = http.Get(base + "/global")
	if err != nil || resp.StatusCode != 200 {
		log.Fatalln("failure getting global stats:", resp, err)
	}
	defer resp.Body.Close()

	var global struct {
		Global models.GlobalStats `json:"global"`
	}
	err = json.NewDecoder(resp.Body).Decode(&global)
	if err != nil {
		log.Fatalln("error decoding global stats", err)
	}

	fmt.Println("pair sum:", pairVol, "global:", global.Global.OneDayVolumeUSD)

	resp, err = http.Get(base + "/global/chart")
	if err != nil || resp.StatusCode != 200 {
		log.Fatalln("failure getting global chart:", resp, err)
	}
	defer resp.Body.Close()

	var chart struct {
		Daily  []models.DayBucket  `json:"daily"`
		Weekly []models.WeekBucket `json:"weekly"`
	}
	err = json.NewDecoder(resp.Body).Decode(&chart)
	if err != nil {
		log.Fatalln("error decoding global chart", err)
	}

	var daily, weekly float64
	for _, d := range chart.Daily {
		daily += d.DailyVolumeUSD
	}
	for _, w := range chart.Weekly {
		weekly += w.WeeklyVolumeUSD
	}

	fmt.Println("daily sum:", daily, "weekly sum:", weekly)
}
