package dailylog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	dailylog "github.com/balinomad/go-dailylog"
)

func Example() {
	dir, err := os.MkdirTemp("", "dailylog-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	w, err := dailylog.New(dir, "foo", dailylog.WithLocation(time.UTC))
	if err != nil {
		fmt.Println(err)
		return
	}

	ts := time.Date(2021, time.March, 28, 10, 0, 0, 0, time.UTC)
	_ = w.WriteRecord([]byte("hello\n"), ts)
	_ = w.WriteRecord([]byte("world\n"), ts.Add(24*time.Hour))
	fmt.Println(filepath.Base(w.Path()))

	if err := w.Shutdown(); err != nil {
		fmt.Println(err)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "foo_r2021-03-28.log"))
	fmt.Print(string(content))

	// Output:
	// foo_r2021-03-29.log
	// hello
}

func ExampleBuildPath() {
	p := dailylog.BuildPath("log_files", "foo", dailylog.NewDate(2021, time.March, 28))
	fmt.Println(filepath.ToSlash(p))

	// Output:
	// log_files/foo_r2021-03-28.log
}

func ExampleManualDate() {
	dates := dailylog.NewManualDate(dailylog.NewDate(2021, time.December, 31))
	fmt.Println(dates.Today())
	fmt.Println(dates.Advance(1))

	// Output:
	// 2021-12-31
	// 2022-01-01
}
