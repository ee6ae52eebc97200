package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var DirectoryABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      }
    ],
    "name": "controllerOf",
    "outputs": [
      {
        "internalType": "contract IERC165",
        "name": "",
        "type": "address"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]
`))

var ControllerABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [
      {
        "internalType": "address",
        "name": "owner",
        "type": "address"
      },
      {
        "internalType": "string",
        "name": "projectUri",
        "type": "string"
      },
      {
        "internalType": "struct JBRulesetConfig[]",
        "name": "rulesetConfigurations",
        "type": "tuple[]",
        "components": [
          {
            "internalType": "uint48",
            "name": "mustStartAtOrAfter",
            "type": "uint48"
          },
          {
            "internalType": "uint32",
            "name": "duration",
            "type": "uint32"
          },
          {
            "internalType": "uint112",
            "name": "weight",
            "type": "uint112"
          },
          {
            "internalType": "uint32",
            "name": "weightCutPercent",
            "type": "uint32"
          },
          {
            "internalType": "contract IJBRulesetApprovalHook",
            "name": "approvalHook",
            "type": "address"
          },
          {
            "internalType": "struct JBRulesetMetadata",
            "name": "metadata",
            "type": "tuple",
            "components": [
              {
                "internalType": "uint16",
                "name": "reservedPercent",
                "type": "uint16"
              },
              {
                "internalType": "uint16",
                "name": "cashOutTaxRate",
                "type": "uint16"
              },
              {
                "internalType": "uint32",
                "name": "baseCurrency",
                "type": "uint32"
              },
              {
                "internalType": "bool",
                "name": "pausePay",
                "type": "bool"
              },
              {
                "internalType": "bool",
                "name": "allowOwnerMinting",
                "type": "bool"
              },
              {
                "internalType": "bool",
                "name": "holdFees",
                "type": "bool"
              },
              {
                "internalType": "address",
                "name": "dataHook",
                "type": "address"
              }
            ]
          }
        ]
      },
      {
        "internalType": "struct JBTerminalConfig[]",
        "name": "terminalConfigurations",
        "type": "tuple[]",
        "components": [
          {
            "internalType": "contract IJBTerminal",
            "name": "terminal",
            "type": "address"
          },
          {
            "internalType": "struct JBAccountingContext[]",
            "name": "accountingContextsToAccept",
            "type": "tuple[]",
            "components": [
              {
                "internalType": "address",
                "name": "token",
                "type": "address"
              },
              {
                "internalType": "uint8",
                "name": "decimals",
                "type": "uint8"
              },
              {
                "internalType": "uint32",
                "name": "currency",
                "type": "uint32"
              }
            ]
          }
        ]
      },
      {
        "internalType": "string",
        "name": "memo",
        "type": "string"
      }
    ],
    "name": "launchProjectFor",
    "outputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      },
      {
        "internalType": "struct JBRulesetConfig[]",
        "name": "rulesetConfigurations",
        "type": "tuple[]",
        "components": [
          {
            "internalType": "uint48",
            "name": "mustStartAtOrAfter",
            "type": "uint48"
          },
          {
            "internalType": "uint32",
            "name": "duration",
            "type": "uint32"
          },
          {
            "internalType": "uint112",
            "name": "weight",
            "type": "uint112"
          },
          {
            "internalType": "uint32",
            "name": "weightCutPercent",
            "type": "uint32"
          },
          {
            "internalType": "contract IJBRulesetApprovalHook",
            "name": "approvalHook",
            "type": "address"
          },
          {
            "internalType": "struct JBRulesetMetadata",
            "name": "metadata",
            "type": "tuple",
            "components": [
              {
                "internalType": "uint16",
                "name": "reservedPercent",
                "type": "uint16"
              },
              {
                "internalType": "uint16",
                "name": "cashOutTaxRate",
                "type": "uint16"
              },
              {
                "internalType": "uint32",
                "name": "baseCurrency",
                "type": "uint32"
              },
              {
                "internalType": "bool",
                "name": "pausePay",
                "type": "bool"
              },
              {
                "internalType": "bool",
                "name": "allowOwnerMinting",
                "type": "bool"
              },
              {
                "internalType": "bool",
                "name": "holdFees",
                "type": "bool"
              },
              {
                "internalType": "address",
                "name": "dataHook",
                "type": "address"
              }
            ]
          }
        ]
      },
      {
        "internalType": "string",
        "name": "memo",
        "type": "string"
      }
    ],
    "name": "queueRulesetsOf",
    "outputs": [
      {
        "internalType": "uint256",
        "name": "rulesetId",
        "type": "uint256"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      },
      {
        "internalType": "string",
        "name": "name",
        "type": "string"
      },
      {
        "internalType": "string",
        "name": "symbol",
        "type": "string"
      },
      {
        "internalType": "bytes32",
        "name": "salt",
        "type": "bytes32"
      }
    ],
    "name": "deployERC20For",
    "outputs": [
      {
        "internalType": "contract IJBToken",
        "name": "token",
        "type": "address"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`))

var MultiTerminalABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      },
      {
        "internalType": "address",
        "name": "token",
        "type": "address"
      },
      {
        "internalType": "uint256",
        "name": "amount",
        "type": "uint256"
      },
      {
        "internalType": "address",
        "name": "beneficiary",
        "type": "address"
      },
      {
        "internalType": "uint256",
        "name": "minReturnedTokens",
        "type": "uint256"
      },
      {
        "internalType": "string",
        "name": "memo",
        "type": "string"
      },
      {
        "internalType": "bytes",
        "name": "metadata",
        "type": "bytes"
      }
    ],
    "name": "pay",
    "outputs": [
      {
        "internalType": "uint256",
        "name": "beneficiaryTokenCount",
        "type": "uint256"
      }
    ],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "internalType": "address",
        "name": "holder",
        "type": "address"
      },
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      },
      {
        "internalType": "uint256",
        "name": "cashOutCount",
        "type": "uint256"
      },
      {
        "internalType": "address",
        "name": "tokenToReclaim",
        "type": "address"
      },
      {
        "internalType": "uint256",
        "name": "minTokensReclaimed",
        "type": "uint256"
      },
      {
        "internalType": "address",
        "name": "beneficiary",
        "type": "address"
      },
      {
        "internalType": "bytes",
        "name": "metadata",
        "type": "bytes"
      }
    ],
    "name": "cashOutTokensOf",
    "outputs": [
      {
        "internalType": "uint256",
        "name": "reclaimAmount",
        "type": "uint256"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      },
      {
        "internalType": "address",
        "name": "token",
        "type": "address"
      },
      {
        "internalType": "uint256",
        "name": "amount",
        "type": "uint256"
      },
      {
        "internalType": "uint256",
        "name": "currency",
        "type": "uint256"
      },
      {
        "internalType": "uint256",
        "name": "minTokensPaidOut",
        "type": "uint256"
      }
    ],
    "name": "sendPayoutsOf",
    "outputs": [
      {
        "internalType": "uint256",
        "name": "amountPaidOut",
        "type": "uint256"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`))

var SuckerRegistryABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "projectId",
        "type": "uint256"
      },
      {
        "internalType": "bytes32",
        "name": "salt",
        "type": "bytes32"
      },
      {
        "internalType": "struct JBSuckerDeployerConfig[]",
        "name": "configurations",
        "type": "tuple[]",
        "components": [
          {
            "internalType": "contract IJBSuckerDeployer",
            "name": "deployer",
            "type": "address"
          },
          {
            "internalType": "struct JBTokenMapping[]",
            "name": "mappings",
            "type": "tuple[]",
            "components": [
              {
                "internalType": "address",
                "name": "localToken",
                "type": "address"
              },
              {
                "internalType": "uint32",
                "name": "minGas",
                "type": "uint32"
              },
              {
                "internalType": "address",
                "name": "remoteToken",
                "type": "address"
              },
              {
                "internalType": "uint256",
                "name": "minBridgeAmount",
                "type": "uint256"
              }
            ]
          }
        ]
      }
    ],
    "name": "deploySuckersFor",
    "outputs": [
      {
        "internalType": "address[]",
        "name": "suckers",
        "type": "address[]"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`))

var RevDeployerABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [
      {
        "internalType": "uint256",
        "name": "revnetId",
        "type": "uint256"
      },
      {
        "internalType": "struct REVConfig",
        "name": "configuration",
        "type": "tuple",
        "components": [
          {
            "internalType": "struct REVDescription",
            "name": "description",
            "type": "tuple",
            "components": [
              {
                "internalType": "string",
                "name": "name",
                "type": "string"
              },
              {
                "internalType": "string",
                "name": "ticker",
                "type": "string"
              },
              {
                "internalType": "string",
                "name": "uri",
                "type": "string"
              },
              {
                "internalType": "bytes32",
                "name": "salt",
                "type": "bytes32"
              }
            ]
          },
          {
            "internalType": "uint32",
            "name": "baseCurrency",
            "type": "uint32"
          },
          {
            "internalType": "address",
            "name": "splitOperator",
            "type": "address"
          },
          {
            "internalType": "struct REVStageConfig[]",
            "name": "stageConfigurations",
            "type": "tuple[]",
            "components": [
              {
                "internalType": "uint48",
                "name": "startsAtOrAfter",
                "type": "uint48"
              },
              {
                "internalType": "uint16",
                "name": "splitPercent",
                "type": "uint16"
              },
              {
                "internalType": "uint112",
                "name": "initialIssuance",
                "type": "uint112"
              },
              {
                "internalType": "uint32",
                "name": "issuanceCutFrequency",
                "type": "uint32"
              },
              {
                "internalType": "uint32",
                "name": "issuanceCutPercent",
                "type": "uint32"
              },
              {
                "internalType": "uint16",
                "name": "cashOutTaxRate",
                "type": "uint16"
              }
            ]
          }
        ]
      },
      {
        "internalType": "struct JBTerminalConfig[]",
        "name": "terminalConfigurations",
        "type": "tuple[]",
        "components": [
          {
            "internalType": "contract IJBTerminal",
            "name": "terminal",
            "type": "address"
          },
          {
            "internalType": "struct JBAccountingContext[]",
            "name": "accountingContextsToAccept",
            "type": "tuple[]",
            "components": [
              {
                "internalType": "address",
                "name": "token",
                "type": "address"
              },
              {
                "internalType": "uint8",
                "name": "decimals",
                "type": "uint8"
              },
              {
                "internalType": "uint32",
                "name": "currency",
                "type": "uint32"
              }
            ]
          }
        ]
      },
      {
        "internalType": "struct REVSuckerDeploymentConfig",
        "name": "suckerDeploymentConfiguration",
        "type": "tuple",
        "components": [
          {
            "internalType": "struct JBSuckerDeployerConfig[]",
            "name": "deployerConfigurations",
            "type": "tuple[]",
            "components": [
              {
                "internalType": "contract IJBSuckerDeployer",
                "name": "deployer",
                "type": "address"
              },
              {
                "internalType": "struct JBTokenMapping[]",
                "name": "mappings",
                "type": "tuple[]",
                "components": [
                  {
                    "internalType": "address",
                    "name": "localToken",
                    "type": "address"
                  },
                  {
                    "internalType": "uint32",
                    "name": "minGas",
                    "type": "uint32"
                  },
                  {
                    "internalType": "address",
                    "name": "remoteToken",
                    "type": "address"
                  },
                  {
                    "internalType": "uint256",
                    "name": "minBridgeAmount",
                    "type": "uint256"
                  }
                ]
              }
            ]
          },
          {
            "internalType": "bytes32",
            "name": "salt",
            "type": "bytes32"
          }
        ]
      }
    ],
    "name": "deployFor",
    "outputs": [
      {
        "internalType": "uint256",
        "name": "",
        "type": "uint256"
      }
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`))
