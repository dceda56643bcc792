package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dzjyyds666/stq/parse/stringtable"
	"github.com/dzjyyds666/stq/pkg"
)

type StringsParams struct {
	Find   string `json:"find"`   // 查找的key
	Input  string `json:"input"`  // 输入文件路径
	Output string `json:"output"` // 输出文件地址
	Format string `json:"format"` // 输出格式
}

var params *StringsParams

var stringsCmd = &cobra.Command{
	Use:   "strings",
	Short: "strings table parse tools",
	Run:   stringsRun,
}

func init() {
	params = &StringsParams{}
	stringsCmd.Flags().StringVarP(&params.Find, "find", "f", "", "print every value bound to this key")
	stringsCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	stringsCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path")
	stringsCmd.Flags().StringVar(&params.Format, "format", "strings", "output format: strings, json or yaml")
}

func stringsRun(cmd *cobra.Command, args []string) {
	if len(params.Input) == 0 {
		fmt.Println("no input file path")
		return
	}
	exist, err := pkg.CheckFileExist(params.Input)
	if err != nil {
		fmt.Println("check file exist error:", err)
		return
	}
	if !exist {
		fmt.Println("input file not exist")
		return
	}

	data, err := pkg.ReadFile(params.Input)
	if err != nil {
		fmt.Println("read file error:", err)
		return
	}
	table, err := stringtable.Decode(data)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	if len(params.Find) > 0 {
		values := table.Values(params.Find)
		if len(values) == 0 {
			fmt.Println("key not found:", params.Find)
			return
		}
		for _, v := range values {
			fmt.Println(v)
		}
		return
	}

	if len(params.Output) > 0 {
		out, err := exportTable(table, params.Format)
		if err != nil {
			fmt.Println("export error:", err)
			return
		}
		if err := pkg.WriteFile(params.Output, out); err != nil {
			fmt.Println("write file error:", err)
			return
		}
		return
	}

	for _, e := range table {
		fmt.Printf("%s = %s\n", e.Key, e.Value)
	}
}

func exportTable(table stringtable.File, format string) ([]byte, error) {
	switch format {
	case "strings":
		return stringtable.Encode(table)
	case "json":
		return json.MarshalIndent(table, "", "  ")
	case "yaml":
		return yaml.Marshal(table)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
