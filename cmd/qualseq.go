package cmd

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var RootCmd = &cobra.Command{
	Use:   "qualseq",
	Short: "qualseq is a toolbox for base-call quality analysis of sequencing reads.",
	Long: `qualseq converts Phred quality scores into base-call probabilities and uses
them to report on and filter sequencing reads.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Please provide a command to run.\n\n")
			cmd.Usage()
			os.Exit(1)
		}
	},
}

const (
	DEBUG = false
)

const MaxInt = math.MaxInt32

var cfgFile string

var Verbose bool
var PrintHeader bool

const (
	// Supported sequence file formats
	FastaFormat   string = "fasta"
	FastqFormat          = "fastq"
	UnknownFormat        = "unknown"
)

func GuessFileFormat(filename string) (format string, err error) {
	switch filepath.Ext(strings.ToLower(filename)) {
	case ".fastq", ".fq":
		return FastqFormat, nil
	case ".fasta", ".fa", ".fna", ".faa":
		return FastaFormat, nil
	}
	fmt.Fprintf(os.Stderr, "Unknown file format: %s\n", filepath.Ext(strings.ToLower(filename)))
	return UnknownFormat, nil
}

var MemProfileFileName string
var MemProfileFile *os.File
var CpuProfileFileName string
var CpuProfileFile *os.File

func StartProfiling() {
	if DEBUG && (MemProfileFileName != "" || CpuProfileFileName != "") {
		fmt.Fprintf(os.Stderr, "Starting Profiling.\nLogging CPU Profile to:  %s\nLogging Mem Profile to:  %s\n", CpuProfileFileName, MemProfileFileName)
	}
	if MemProfileFileName != "" {
		var err error
		MemProfileFile, err = os.Create(MemProfileFileName)
		if err != nil {
			log.Fatal(err)
		}
	}

	if CpuProfileFileName != "" {
		CpuProfileFile, err := os.Create(CpuProfileFileName)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(CpuProfileFile)
	}
}

func StopProfiling() {
	if DEBUG && (MemProfileFileName != "" || CpuProfileFileName != "") {
		fmt.Fprintf(os.Stderr, "Stopping Profiling.\n")
	}
	if MemProfileFileName != "" {
		pprof.WriteHeapProfile(MemProfileFile)
		MemProfileFile.Close()
	}
	if CpuProfileFileName != "" {
		pprof.StopCPUProfile()
		CpuProfileFile.Close()
	}
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "", false, "Enable verbose output.")
	RootCmd.PersistentFlags().BoolVarP(&PrintHeader, "print-header", "", false, "Include column header in output.")
	RootCmd.PersistentFlags().StringVarP(&MemProfileFileName, "memprofile", "", "", "Write a memory profile to this file.")
	RootCmd.PersistentFlags().StringVarP(&CpuProfileFileName, "cpuprofile", "", "", "Write a CPU profile to this file.")

	RootCmd.Flags().BoolP("help", "h", false, "Show this help message.")

	if Verbose {
		fmt.Fprintf(os.Stderr, "verbose: %t\n", Verbose)
		fmt.Fprintf(os.Stderr, "using %d/%d available procs \n", runtime.GOMAXPROCS(0), runtime.NumCPU())
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName(".qualseq") // name of config file (without extension)
	viper.AddConfigPath("$HOME")    // adding home directory as first search path
	viper.AutomaticEnv()            // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func check(e error) {
	if e != nil {
		log.Fatal(e)
	}
}
