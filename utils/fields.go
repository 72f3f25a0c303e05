package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// 错误定义
var (
	ErrMissing = errors.New("utils: 缺少字段")
	ErrSyntax  = errors.New("utils: 字段格式错误")
)

// Fields 以空白分隔的字段列表
type Fields []string

// SplitFields 按空白拆分一行，# 之后为注释
func SplitFields(line string) Fields {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return Fields(strings.Fields(line))
}

// ReadLines 逐行读取非空字段列表
func ReadLines(r io.Reader) ([]Fields, error) {
	var lines []Fields
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if fields := SplitFields(scanner.Text()); len(fields) > 0 {
			lines = append(lines, fields)
		}
	}
	return lines, scanner.Err()
}

// ReadFields 读取全部字段，忽略换行
func ReadFields(r io.Reader) (Fields, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	var all Fields
	for _, line := range lines {
		all = append(all, line...)
	}
	return all, nil
}

// Len 字段数量
func (value Fields) Len() int { return len(value) }

func (value Fields) at(i int) (string, error) {
	if i < 0 || i >= len(value) {
		return "", fmt.Errorf("%w: 第 %d 个, 共 %d 个", ErrMissing, i+1, len(value))
	}
	return value[i], nil
}

// Float64 解析64位浮点数
func (value Fields) Float64(i int) (float64, error) {
	s, err := value.at(i)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' 不是浮点数", ErrSyntax, s)
	}
	return val, nil
}

// Int 解析整数
func (value Fields) Int(i int) (int, error) {
	s, err := value.at(i)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' 不是整数", ErrSyntax, s)
	}
	return val, nil
}

// Uint64 解析64位无符号整数
func (value Fields) Uint64(i int) (uint64, error) {
	s, err := value.at(i)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' 不是无符号整数", ErrSyntax, s)
	}
	return val, nil
}

// ParseString 安全获取字符串
func (value Fields) ParseString(i int, defaultValue string) string {
	if i < len(value) {
		return value[i]
	}
	return defaultValue
}
