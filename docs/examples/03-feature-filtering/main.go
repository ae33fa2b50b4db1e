package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/vtrender/pkg/vtile"
)

// Primary roads and named water, everything else is filtered out
const style = `{
	"version": 8,
	"layers": [
		{"id": "background", "type": "background",
		 "paint": {"background-color": "#f8f4f0"}},
		{"id": "water", "type": "fill", "source-layer": "water",
		 "filter": ["all", ["==", "$type", "Polygon"], ["has", "name"]],
		 "paint": {"fill-color": "#a0c8f0"}},
		{"id": "roads", "type": "line", "source-layer": "transportation",
		 "filter": ["in", "class", "motorway", "trunk", "primary"],
		 "paint": {"line-color": "#e892a2",
		           "line-width": {"base": 1.2, "stops": [[10, 1], [18, 12]]}}},
		{"id": "road-names", "type": "symbol", "source-layer": "transportation_name",
		 "minzoom": 13,
		 "layout": {"symbol-placement": "line", "text-field": "{name}",
		            "text-font": ["Noto Sans Regular"], "text-size": 12}}
	]
}`

func main() {
	s, err := vtile.LoadStyle([]byte(style))
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile("14-8529-5975.pbf")
	if err != nil {
		log.Fatal(err)
	}

	r := vtile.NewRenderer(s, vtile.DefaultOptions())
	for _, zoom := range []int{12, 14} {
		res, err := r.Render(data, zoom)
		if err != nil {
			log.Fatal(err)
		}

		counts := make(map[string]int)
		for _, in := range res.Intents {
			counts[in.Layer]++
		}
		fmt.Printf("zoom %d: water=%d roads=%d road-names=%d\n",
			zoom, counts["water"], counts["roads"], counts["road-names"])
	}
}
