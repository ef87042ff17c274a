package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/pcpatch/pkg/pointcloud"
)

func main() {
	schema, err := pointcloud.NewSchema(2, 0, []pointcloud.Dimension{
		{Name: "X", Interp: pointcloud.Int32, Scale: 0.01},
		{Name: "Y", Interp: pointcloud.Int32, Scale: 0.01},
		{Name: "Classification", Interp: pointcloud.Uint8, Scale: 1},
	}, pointcloud.PreferNone)
	if err != nil {
		log.Fatal(err)
	}

	rows := [][3]float64{
		{0.08, 0.01, 2},
		{0.02, 0.09, 1},
		{0.05, 0.05, 2},
		{0.01, 0.01, 1},
	}
	var pts []*pointcloud.Point
	for _, r := range rows {
		p, err := pointcloud.NewPoint(schema, r[:])
		if err != nil {
			log.Fatal(err)
		}
		pts = append(pts, p)
	}

	patch, err := pointcloud.FromPoints(schema, pts)
	if err != nil {
		log.Fatal(err)
	}

	ground, err := patch.Filter("Classification", pointcloud.EQ, 2, 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("ground points: %d\n", ground.NPoints())

	sorted, err := ground.Sort([]string{"X"})
	if err != nil {
		log.Fatal(err)
	}
	sortedPts, err := sorted.Points()
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range sortedPts {
		x, _ := p.X()
		y, _ := p.Y()
		fmt.Printf("  (%.2f, %.2f)\n", x, y)
	}
}
