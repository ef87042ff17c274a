package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/pcpatch/pkg/pointcloud"
)

func main() {
	schema, err := pointcloud.NewSchema(3, 26910, []pointcloud.Dimension{
		{Name: "X", Interp: pointcloud.Int32, Scale: 0.01},
		{Name: "Y", Interp: pointcloud.Int32, Scale: 0.01},
	}, pointcloud.PreferNone)
	if err != nil {
		log.Fatal(err)
	}

	p, err := pointcloud.NewPoint(schema, []float64{512345.12, 4812345.67})
	if err != nil {
		log.Fatal(err)
	}

	buf := p.Serialize()
	fmt.Printf("serialized point: %d bytes\n", len(buf))

	back, err := pointcloud.DeserializePoint(schema, buf)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("round-tripped point: %s\n", back.String())

	wkb, err := back.WKB()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("EWKB: %d bytes\n", len(wkb))

	// A schema cache keeps repeated pcid -> Schema lookups cheap, the
	// way a patch-storage layer would resolve pcid from the wire
	// header on every read.
	cache := pointcloud.NewSchemaCache(64)
	resolved, err := cache.Get(schema.Pcid(), func(int) (*pointcloud.Schema, error) { return schema, nil })
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("resolved schema via cache: pcid=%d srid=%d\n", resolved.Pcid(), resolved.Srid())
}
