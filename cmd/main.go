package main

import (
	"flag"
	"log"

	"phasefield"
	"phasefield/model"
)

func main() {
	name := flag.String("model", "allen-cahn", "演化类型: allen-cahn | cahn-hilliard")
	inputDir := flag.String("input", "input", "输入目录")
	outputDir := flag.String("output", "output", "输出目录，运行前清空")
	report := flag.String("report", "", "echarts 统计报告路径")
	flag.Parse()

	dynamics, err := model.ParseDynamics(*name)
	if err != nil {
		log.Fatal(err)
	}
	sim := phasefield.NewSimulation(dynamics, *inputDir, *outputDir)
	sim.Report = *report
	if err := sim.Load(); err != nil {
		log.Fatal(err)
	}
	if err := sim.Run(); err != nil {
		log.Fatal(err)
	}
}
