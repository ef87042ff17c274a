package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/pcpatch/pkg/pointcloud"
)

func main() {
	schema, err := pointcloud.NewSchema(1, 4326, []pointcloud.Dimension{
		{Name: "X", Interp: pointcloud.Int32, Scale: 0.01},
		{Name: "Y", Interp: pointcloud.Int32, Scale: 0.01},
		{Name: "Z", Interp: pointcloud.Int32, Scale: 0.01},
		{Name: "Intensity", Interp: pointcloud.Int16, Scale: 1},
	}, pointcloud.PreferDimensional)
	if err != nil {
		log.Fatal(err)
	}

	var pts []*pointcloud.Point
	for i := 0; i < 5; i++ {
		p, err := pointcloud.NewPoint(schema, []float64{
			float64(i) * 0.05, float64(i) * 0.02, 1.2, float64(10 + i),
		})
		if err != nil {
			log.Fatal(err)
		}
		pts = append(pts, p)
	}

	patch, err := pointcloud.FromPoints(schema, pts)
	if err != nil {
		log.Fatal(err)
	}

	compressed, err := patch.Compress(nil)
	if err != nil {
		log.Fatal(err)
	}

	b := compressed.Bounds()
	fmt.Printf("patch: %d points, bounds [%.4f,%.4f] to [%.4f,%.4f]\n",
		compressed.NPoints(), b.XMin, b.YMin, b.XMax, b.YMax)
}
