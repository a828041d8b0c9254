package synth

import "errors"

var (
	// 联邦视频缺少来源主机
	ErrInvalidOriginInput = errors.New("synth: federated video without originating host")
	// 缺少所属账号或频道，无法生成联邦对象
	ErrIncompleteVideoForFederation = errors.New("synth: video lacks owning account or channel")
	// 无法得到元数据地址；由构建器内部吸收，只省略该链接
	ErrMissingCodecMetadata = errors.New("synth: no metadata url for file")
)
