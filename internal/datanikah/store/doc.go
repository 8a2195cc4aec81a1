// Package store 提供婚姻登记服务的数据存储层。
//
// 该包定义了记录与用户存储的接口抽象，以及 MongoDB 和内存两种实现。
// 前缀查询统一表示为闭区间 [TERM, TERM+"\uf8ff"]，依赖字符串的字典序。
package store
